package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	// Cache for configuration to avoid repeated file reads
	configCache *Config
	configOnce  sync.Once
)

// LoadCached creates a cached Config instance.
// This function caches the configuration after the first load.
func LoadCached() *Config {
	configOnce.Do(func() {
		configCache = Load()
	})
	return configCache
}

// Load creates a new Config instance by reading the YAML configuration file
// and applying environment variable overrides.
//
// Configuration precedence (highest to lowest):
// 1. Environment variables
// 2. YAML configuration file (CONFIG_FILE, default configs/config.yaml)
// 3. Default values
//
// Load never fails; call Validate before using the result.
func Load() *Config {
	yamlConfig := loadFromYAML(getEnv("CONFIG_FILE", DefaultConfigFile))

	port := getEnv("PORT", yamlConfig.Server.Port)
	if port == "" {
		port = DefaultPort
	}

	environment := getEnv("ENVIRONMENT", yamlConfig.Server.Environment)
	if environment == "" {
		environment = DefaultEnvironment
	}

	logLevel := getEnv("LOG_LEVEL", yamlConfig.Server.LogLevel)
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}

	// Status page configuration
	statusPageURL := getEnv("STATUSPAGE_API_URL", yamlConfig.StatusPage.APIURL)
	if statusPageURL == "" {
		statusPageURL = DefaultStatusPageAPIURL
	}
	interval := parseInterval(getEnv("POLL_INTERVAL", yamlConfig.StatusPage.Interval))
	statusPageTimeout := yamlConfig.StatusPage.TimeoutSeconds
	if statusPageTimeout <= 0 {
		statusPageTimeout = DefaultStatusPageTimeoutSeconds
	}

	// Discord configuration - secrets normally come from the environment
	discordURL := getEnv("DISCORD_API_URL", yamlConfig.Discord.APIURL)
	if discordURL == "" {
		discordURL = DefaultDiscordAPIURL
	}
	discordTimeout := yamlConfig.Discord.TimeoutSeconds
	if discordTimeout <= 0 {
		discordTimeout = DefaultDiscordTimeoutSeconds
	}

	// Storage configuration
	backend := strings.ToLower(getEnv("STORAGE_BACKEND", yamlConfig.Storage.Backend))
	if backend == "" {
		backend = DefaultStorageBackend
	}

	sqlitePath := getEnv("STORE_PATH", yamlConfig.Storage.SQLite.Path)
	if sqlitePath == "" {
		sqlitePath = DefaultSQLitePath
	}

	redisConfig := yamlConfig.Storage.Redis
	redisHost := getEnv("REDIS_HOST", "")
	redisPort := getEnv("REDIS_PORT", "")
	redisPassword := getEnv("REDIS_PASSWORD", redisConfig.Password)

	// Build Redis address from environment variables or use YAML config
	redisAddress := redisConfig.Address
	if redisHost != "" && redisPort != "" {
		redisAddress = redisHost + ":" + redisPort
	} else if redisHost != "" {
		redisAddress = redisHost + ":6379" // Default port
	}

	redisPrefix := redisConfig.KeyPrefix
	if redisPrefix == "" {
		redisPrefix = DefaultRedisKeyPrefix
	}

	return &Config{
		Port:        port,
		Environment: environment,
		LogLevel:    logLevel,
		StatusPage: StatusPageConfig{
			APIURL:         strings.TrimRight(statusPageURL, "/"),
			Interval:       interval,
			TimeoutSeconds: statusPageTimeout,
		},
		Discord: DiscordConfig{
			WebhookID:      getEnv("DISCORD_WEBHOOK_ID", yamlConfig.Discord.WebhookID),
			WebhookToken:   getEnv("DISCORD_WEBHOOK_TOKEN", yamlConfig.Discord.WebhookToken),
			APIURL:         strings.TrimRight(discordURL, "/"),
			Username:       yamlConfig.Discord.Username,
			AvatarURL:      yamlConfig.Discord.AvatarURL,
			TimeoutSeconds: discordTimeout,
		},
		Storage: StorageConfig{
			Backend: backend,
			SQLite: SQLiteYAMLConfig{
				Path: sqlitePath,
			},
			Redis: RedisYAMLConfig{
				Address:   redisAddress,
				Password:  redisPassword,
				Database:  redisConfig.Database,
				KeyPrefix: redisPrefix,
			},
		},
	}
}

// Validate checks that the configuration is complete enough to start polling.
// A missing webhook id or token is reported here; the caller must not start
// the monitor when Validate returns an error.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%s: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	switch c.Storage.Backend {
	case StorageBackendSQLite:
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("%s: sqlite path is required", ErrInvalidConfig)
		}
	case StorageBackendRedis:
		if c.Storage.Redis.Address == "" {
			return fmt.Errorf("%s: redis address is required", ErrInvalidConfig)
		}
	}

	return nil
}

// ErrInvalidConfig prefixes every validation failure
const ErrInvalidConfig = "invalid configuration"

// parseInterval accepts a Go duration ("5m") or a plain number of seconds ("300").
// Empty or unparsable values fall back to DefaultPollInterval.
func parseInterval(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultPollInterval
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return DefaultPollInterval
		}
		return time.Duration(seconds) * time.Second
	}

	interval, err := time.ParseDuration(value)
	if err != nil || interval <= 0 {
		return DefaultPollInterval
	}
	return interval
}

func loadFromYAML(path string) *YAMLConfig {
	config := &YAMLConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return config
	}
	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
