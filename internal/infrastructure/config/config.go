// Package config loads the service configuration with viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	Store    StoreConfig
	AWS      AWSConfig
	DynamoDB DynamoDBConfig
	Retry    RetryConfig
	Storage  StorageConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Swagger  SwaggerConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Timezone string
	Currency string
}

// Location resolves the business timezone used for calendar math.
func (a AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type StoreConfig struct {
	Backend string // dynamodb or memory
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// DynamoDBConfig reads the legacy environment names: DYNAMODB_ENDPOINT
// and one <NAME>_TABLE variable per table.
type DynamoDBConfig struct {
	Endpoint             string
	OrdersActiveTable    string
	OrdersDeliveredTable string
	OrdersDeletedTable   string
	ServicesTable        string
	CostsTable           string
	AdminsTable          string
}

// RetryConfig bounds the SDK retries for transient store and blob failures.
type RetryConfig struct {
	MaxAttempts int
	MaxBackoff  time.Duration
}

// StorageConfig configures the S3 compatible blob store. An empty bucket
// disables image storage.
type StorageConfig struct {
	Endpoint     string
	Bucket       string
	PublicURL    string
	UsePathStyle bool
}

// RedisConfig configures the identity cache. An empty address selects the
// in-process cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type HTTPConfig struct {
	CORSAllowOrigins []string
	MaxUploadBytes   int64
}

type SwaggerConfig struct {
	Enabled bool
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables and an optional
// config.yaml. Environment variables win; keys map to them by replacing "."
// with "_" (retry.max_attempts -> RETRY_MAX_ATTEMPTS).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("swagger.enabled", true)
	v.SetDefault("metrics.enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("app.name"),
			Env:      v.GetString("app.env"),
			Port:     v.GetString("app.port"),
			Timezone: v.GetString("app.timezone"),
			Currency: v.GetString("app.currency"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("store.backend")),
		},
		AWS: AWSConfig{
			Region:          v.GetString("aws.region"),
			AccessKeyID:     v.GetString("aws.access_key_id"),
			SecretAccessKey: v.GetString("aws.secret_access_key"),
		},
		DynamoDB: DynamoDBConfig{
			Endpoint:             v.GetString("dynamodb.endpoint"),
			OrdersActiveTable:    v.GetString("orders_active_table"),
			OrdersDeliveredTable: v.GetString("orders_delivered_table"),
			OrdersDeletedTable:   v.GetString("orders_deleted_table"),
			ServicesTable:        v.GetString("services_table"),
			CostsTable:           v.GetString("costs_table"),
			AdminsTable:          v.GetString("admins_table"),
		},
		Retry: RetryConfig{
			MaxAttempts: v.GetInt("retry.max_attempts"),
			MaxBackoff:  v.GetDuration("retry.max_backoff"),
		},
		Storage: StorageConfig{
			Endpoint:     v.GetString("storage.endpoint"),
			Bucket:       v.GetString("storage.bucket"),
			PublicURL:    v.GetString("storage.public_url"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			MaxUploadBytes:   v.GetInt64("http.max_upload_bytes"),
		},
		Swagger: SwaggerConfig{
			Enabled: v.GetBool("swagger.enabled"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "laundry-desk"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.App.Timezone == "" {
		cfg.App.Timezone = "UTC"
	}
	if cfg.App.Currency == "" {
		cfg.App.Currency = "DA"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendDynamoDB
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}
	// Local DynamoDB and MinIO do not validate credentials, but the SDK needs some.
	if cfg.AWS.AccessKeyID == "" {
		cfg.AWS.AccessKeyID = "local"
	}
	if cfg.AWS.SecretAccessKey == "" {
		cfg.AWS.SecretAccessKey = "local"
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.MaxBackoff == 0 {
		cfg.Retry.MaxBackoff = 2 * time.Second
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 24 * time.Hour
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if cfg.HTTP.MaxUploadBytes == 0 {
		cfg.HTTP.MaxUploadBytes = 10 << 20
	}
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendDynamoDB, BackendMemory:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendDynamoDB, BackendMemory, c.Store.Backend)
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("app.timezone: %w", err)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.MaxBackoff < 0 {
		return fmt.Errorf("retry.max_backoff cannot be negative")
	}
	if c.HTTP.MaxUploadBytes < 0 {
		return fmt.Errorf("http.max_upload_bytes cannot be negative")
	}
	if c.App.Env == "production" && c.Store.Backend == BackendMemory {
		return fmt.Errorf("store.backend=memory is not allowed in production")
	}
	return nil
}
