package config

import "time"

// Default configuration values
const (
	// DefaultPort is the default HTTP server port
	DefaultPort = "3000"

	// DefaultEnvironment is the default deployment environment
	DefaultEnvironment = "development"

	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"

	// DefaultConfigFile is the YAML file read when CONFIG_FILE is not set
	DefaultConfigFile = "configs/config.yaml"
)

// Status page polling defaults
const (
	// DefaultStatusPageAPIURL is the status page API base; "/incidents.json" is appended
	DefaultStatusPageAPIURL = "https://discordstatus.com/api/v2"

	// DefaultPollInterval is the time between two incident checks
	DefaultPollInterval = 5 * time.Minute

	// DefaultStatusPageTimeoutSeconds bounds a single incident fetch
	DefaultStatusPageTimeoutSeconds = 30
)

// Discord webhook defaults
const (
	// DefaultDiscordAPIURL is the Discord REST API base
	DefaultDiscordAPIURL = "https://discord.com/api/v10"

	// DefaultDiscordTimeoutSeconds bounds a single webhook call
	DefaultDiscordTimeoutSeconds = 10
)

// Storage defaults
const (
	// DefaultStorageBackend is the embedded file-backed store
	DefaultStorageBackend = StorageBackendSQLite

	// DefaultSQLitePath is where the SQLite store file lives
	DefaultSQLitePath = "./data/data.sqlite"

	// DefaultRedisKeyPrefix namespaces all Redis keys
	DefaultRedisKeyPrefix = "statuspage-mirror"
)

// Valid environment values
const (
	ValidEnvironmentDevelopment = "development"
	ValidEnvironmentProduction  = "production"
)

// Valid log level values
const (
	ValidLogLevelDebug = "debug"
	ValidLogLevelInfo  = "info"
	ValidLogLevelWarn  = "warn"
	ValidLogLevelError = "error"
)

// Valid storage backends
const (
	StorageBackendSQLite = "sqlite"
	StorageBackendRedis  = "redis"
)
