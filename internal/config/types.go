package config

import "time"

// Config represents the main application configuration structure.
// It contains all configuration settings for the status page mirror,
// including server settings, status page polling, the Discord webhook and storage.
type Config struct {
	// HTTP server port (e.g., "3000")
	Port string `validate:"required,numeric"`

	// Application environment (e.g., "development", "production")
	Environment string `validate:"oneof=development production"`

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string `validate:"oneof=debug info warn error"`

	// Status page incident polling configuration
	StatusPage StatusPageConfig

	// Discord webhook the incidents are mirrored to
	Discord DiscordConfig

	// Incident record storage configuration
	Storage StorageConfig
}

// StatusPageConfig holds configuration for polling the status page API.
type StatusPageConfig struct {
	// Status page API base URL (e.g., "https://discordstatus.com/api/v2")
	APIURL string `validate:"required,url"`

	// Polling interval for incident checks (e.g., "5m")
	Interval time.Duration `validate:"gt=0"`

	// HTTP timeout in seconds for one incident fetch
	TimeoutSeconds int `validate:"gte=0"`
}

// DiscordConfig holds configuration for the Discord webhook sink.
// The webhook id and token come from the webhook URL
// https://discord.com/api/webhooks/<id>/<token>.
type DiscordConfig struct {
	// Webhook identifier
	WebhookID string `validate:"required"`

	// Webhook secret token
	WebhookToken string `validate:"required"`

	// Discord REST API base URL
	APIURL string `validate:"required,url"`

	// Display name override for posted messages (optional)
	Username string

	// Avatar override for posted messages (optional)
	AvatarURL string `validate:"omitempty,url"`

	// HTTP timeout in seconds for one webhook call
	TimeoutSeconds int `validate:"gte=0"`
}

// ServerConfig represents server-related configuration settings.
type ServerConfig struct {
	// HTTP server port (e.g., "3000")
	Port string `yaml:"port"`

	// Application environment (e.g., "development", "production")
	Environment string `yaml:"environment"`

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string `yaml:"log_level"`
}

// StatusPageYAMLConfig represents status page polling configuration from YAML files.
type StatusPageYAMLConfig struct {
	// Status page API base URL
	APIURL string `yaml:"api_url"`

	// Polling interval as string (e.g., "5m") or plain seconds (e.g., "300")
	Interval string `yaml:"interval"`

	// HTTP timeout in seconds
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DiscordYAMLConfig represents Discord webhook configuration from YAML files.
type DiscordYAMLConfig struct {
	WebhookID      string `yaml:"webhook_id"`
	WebhookToken   string `yaml:"webhook_token"`
	APIURL         string `yaml:"api_url"`
	Username       string `yaml:"username"`
	AvatarURL      string `yaml:"avatar_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StorageConfig holds configuration for incident record storage.
type StorageConfig struct {
	// Backend selects the store implementation ("sqlite" or "redis")
	Backend string `yaml:"backend" validate:"oneof=sqlite redis"`

	// SQLite storage configuration
	SQLite SQLiteYAMLConfig `yaml:"sqlite"`

	// Redis storage configuration
	Redis RedisYAMLConfig `yaml:"redis"`
}

// SQLiteYAMLConfig represents SQLite configuration from YAML files.
type SQLiteYAMLConfig struct {
	// Path of the database file (e.g., "./data/data.sqlite")
	Path string `yaml:"path"`
}

// RedisYAMLConfig represents Redis configuration from YAML files.
type RedisYAMLConfig struct {
	// Redis server address (e.g., "localhost:6379")
	Address string `yaml:"address"`

	// Redis password for authentication
	Password string `yaml:"password"`

	// Redis database number (0-15)
	Database int `yaml:"database" validate:"gte=0,lte=15"`

	// Key prefix for all Redis keys (e.g., "statuspage-mirror")
	KeyPrefix string `yaml:"key_prefix"`
}

// YAMLConfig represents the structure of the YAML configuration file.
type YAMLConfig struct {
	// Server configuration settings
	Server ServerConfig `yaml:"server"`

	// Status page polling configuration
	StatusPage StatusPageYAMLConfig `yaml:"statuspage"`

	// Discord webhook configuration
	Discord DiscordYAMLConfig `yaml:"discord"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`
}
