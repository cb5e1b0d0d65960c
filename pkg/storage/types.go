package storage

import (
	"context"
	"time"
)

// IncidentRecord is the persisted reconciliation state of one incident.
// A record exists only once a message for the incident was sent successfully.
type IncidentRecord struct {
	// IncidentID is the status page incident identifier
	IncidentID string `json:"incidentID" gorm:"primaryKey"`

	// MessageID is the chat message returned by the most recent send or edit
	MessageID string `json:"messageID" gorm:"not null"`

	// LastUpdate is the incident's effective update time when it was last applied
	LastUpdate time.Time `json:"lastUpdate" gorm:"not null"`

	// Resolved reports whether the incident was resolved when last applied
	Resolved bool `json:"resolved"`
}

// TableName pins the SQLite table name.
func (IncidentRecord) TableName() string {
	return "incident_records"
}

// Store is a durable mapping from incident id to its reconciliation record.
type Store interface {
	// Get returns the record for incidentID, or (nil, nil) when none exists.
	Get(ctx context.Context, incidentID string) (*IncidentRecord, error)

	// Set upserts the record, replacing any previous record for the same id.
	Set(ctx context.Context, record *IncidentRecord) error

	// List returns every stored record ordered by incident id.
	List(ctx context.Context) ([]IncidentRecord, error)

	// Close releases the underlying connection.
	Close() error
}

// StorageConfig holds configuration for the storage backend.
type StorageConfig struct {
	// Backend is "sqlite" or "redis"
	Backend string `json:"backend"`

	// SQLite configuration
	SQLite SQLiteConfig `json:"sqlite"`

	// Redis configuration
	Redis RedisConfig `json:"redis"`
}

// SQLiteConfig holds SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the database file; its directory is created when missing
	Path string `json:"path"`
}

// RedisConfig holds Redis-specific configuration.
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address string `json:"address"`

	// Password is the Redis password (optional)
	Password string `json:"password"`

	// Database is the Redis database number (0-15)
	Database int `json:"database"`

	// KeyPrefix is the prefix for all Redis keys
	KeyPrefix string `json:"key_prefix"`
}
