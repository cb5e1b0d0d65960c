package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// slowQueryThreshold is the duration after which a query is logged as slow
const slowQueryThreshold = 200 * time.Millisecond

// SQLiteStore keeps incident records in a single SQLite file.
// The connection pool holds one connection, so every statement is serialized.
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database file and migrates
// the incident_records table.
func NewSQLiteStore(config SQLiteConfig) (*SQLiteStore, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("SQLite path is required")
	}

	if dir := filepath.Dir(config.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
	}

	dsn := config.Path + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.NewGormAdapter(slowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access SQLite connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&IncidentRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate SQLite schema: %w", err)
	}

	logger.Infof("SQLite storage opened at %s", config.Path)

	return &SQLiteStore{
		db:   db,
		path: config.Path,
	}, nil
}

// Get retrieves the record for incidentID.
func (s *SQLiteStore) Get(ctx context.Context, incidentID string) (*IncidentRecord, error) {
	var record IncidentRecord
	err := s.db.WithContext(ctx).Where("incident_id = ?", incidentID).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident record: %w", err)
	}

	return &record, nil
}

// Set inserts the record or replaces the existing row with the same incident id.
func (s *SQLiteStore) Set(ctx context.Context, record *IncidentRecord) error {
	if record == nil || record.IncidentID == "" {
		return fmt.Errorf("incident record requires an incident id")
	}

	row := *record
	row.LastUpdate = row.LastUpdate.UTC()

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "incident_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to store incident record: %w", err)
	}

	logger.Debugf("Stored incident record %s (message: %s, resolved: %t)", row.IncidentID, row.MessageID, row.Resolved)
	return nil
}

// List returns all records ordered by incident id.
func (s *SQLiteStore) List(ctx context.Context) ([]IncidentRecord, error) {
	records := make([]IncidentRecord, 0)
	if err := s.db.WithContext(ctx).Order("incident_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list incident records: %w", err)
	}
	return records, nil
}

// Close closes the database file.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
