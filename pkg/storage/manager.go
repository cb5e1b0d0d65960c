package storage

import "fmt"

// Supported backends
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// NewManager opens the store selected by config.Backend.
// An empty backend selects SQLite.
func NewManager(config StorageConfig) (Store, error) {
	switch config.Backend {
	case BackendSQLite, "":
		store, err := NewSQLiteStore(config.SQLite)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendRedis:
		store, err := NewRedisStore(config.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", config.Backend)
	}
}
