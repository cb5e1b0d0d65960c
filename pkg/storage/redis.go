package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps incident records in Redis, one JSON value per incident.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a new Redis store with the provided configuration.
// It initializes the connection and validates connectivity.
func NewRedisStore(config RedisConfig) (*RedisStore, error) {
	if config.Address == "" {
		return nil, fmt.Errorf("Redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           config.Database,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Redis storage client connected successfully to %s", config.Address)

	return &RedisStore{
		client:    rdb,
		keyPrefix: config.KeyPrefix,
	}, nil
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// buildKey joins the prefix and parts with ':'. An empty prefix adds no
// leading separator.
func (r *RedisStore) buildKey(parts ...string) string {
	var builder strings.Builder
	builder.WriteString(r.keyPrefix)
	for _, part := range parts {
		if builder.Len() > 0 {
			builder.WriteByte(':')
		}
		builder.WriteString(part)
	}
	return builder.String()
}

// Get retrieves an incident record from Redis.
func (r *RedisStore) Get(ctx context.Context, incidentID string) (*IncidentRecord, error) {
	data, err := r.client.Get(ctx, r.buildKey("incident", incidentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident record: %w", err)
	}

	var record IncidentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident record: %w", err)
	}

	return &record, nil
}

// Set stores an incident record without expiration; records are kept so
// late updates to resolved incidents can still be applied.
func (r *RedisStore) Set(ctx context.Context, record *IncidentRecord) error {
	if record == nil || record.IncidentID == "" {
		return fmt.Errorf("incident record requires an incident id")
	}

	row := *record
	row.LastUpdate = row.LastUpdate.UTC()

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal incident record: %w", err)
	}

	if err := r.client.Set(ctx, r.buildKey("incident", row.IncidentID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store incident record: %w", err)
	}

	logger.Debugf("Stored incident record %s (message: %s, resolved: %t)", row.IncidentID, row.MessageID, row.Resolved)
	return nil
}

// List scans all incident keys under the prefix.
func (r *RedisStore) List(ctx context.Context) ([]IncidentRecord, error) {
	records := make([]IncidentRecord, 0)

	iter := r.client.Scan(ctx, 0, r.buildKey("incident", "*"), 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get incident record: %w", err)
		}

		var record IncidentRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal incident record: %w", err)
		}
		records = append(records, record)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list incident records: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].IncidentID < records[j].IncidentID
	})

	return records, nil
}
