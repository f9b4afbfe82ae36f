// Package config loads the corpsec configuration from a YAML file and then
// applies CORPSEC_* environment overrides.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gartstein/corpsec/internal/compliance/db"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CORPSEC_HTTP_PORT.
const EnvPrefix = "corpsec"

// DefaultHost keeps the unauthenticated API on the local machine.
const DefaultHost = "127.0.0.1"

// DefaultPath is read when no config file is named and it exists.
var DefaultPath = filepath.Join("internal", "compliance", "config", "config.yaml")

type Config struct {
	// Host is the address both servers bind to.
	Host     string `yaml:"HOST" envconfig:"HOST"`
	GRPCPort int    `yaml:"GRPC_PORT" envconfig:"GRPC_PORT"`
	HTTPPort int    `yaml:"HTTP_PORT" envconfig:"HTTP_PORT"`

	DBDriver   string `yaml:"DB_DRIVER" envconfig:"DB_DRIVER"`
	DBPath     string `yaml:"DB_PATH" envconfig:"DB_PATH"`
	DBHost     string `yaml:"DB_HOST" envconfig:"DB_HOST"`
	DBPort     int    `yaml:"DB_PORT" envconfig:"DB_PORT"`
	DBUser     string `yaml:"DB_USER" envconfig:"DB_USER"`
	DBPassword string `yaml:"DB_PASSWORD" envconfig:"DB_PASSWORD"`
	DBName     string `yaml:"DB_NAME" envconfig:"DB_NAME"`
	DBSSLMode  string `yaml:"DB_SSLMODE" envconfig:"DB_SSLMODE"`
	// DBRetry bounds how long startup waits for the database.
	DBRetry time.Duration `yaml:"DB_RETRY" envconfig:"DB_RETRY"`

	StorageKey string `yaml:"STORAGE_KEY" envconfig:"STORAGE_KEY"`

	// KafkaBrokers is empty when change events are disabled.
	KafkaBrokers  []string `yaml:"KAFKA_BROKERS" envconfig:"KAFKA_BROKERS"`
	Topic         string   `yaml:"TOPIC" envconfig:"TOPIC"`
	ConsumerGroup string   `yaml:"CONSUMER_GROUP" envconfig:"CONSUMER_GROUP"`

	Validate bool   `yaml:"VALIDATE" envconfig:"VALIDATE"`
	Language string `yaml:"LANGUAGE" envconfig:"LANGUAGE"`
}

type ctxKey struct{}

// WithContext attaches cfg to ctx.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config attached by WithContext, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	return cfg
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Host:          DefaultHost,
		GRPCPort:      9090,
		HTTPPort:      8080,
		DBDriver:      db.DriverSQLite,
		DBPath:        "corpsec.db",
		DBPort:        5432,
		DBSSLMode:     "disable",
		DBRetry:       30 * time.Second,
		StorageKey:    "companyData",
		Topic:         "corpsec.changes",
		ConsumerGroup: "corpsec-watch",
		Validate:      true,
		Language:      "en",
	}
}

// Load reads path over the defaults, then the environment over that. An empty
// path falls back to DefaultPath when that file exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check rejects settings the service cannot start with.
func (c *Config) Check() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("HOST must not be empty"))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort))
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid GRPC_PORT %d", c.GRPCPort))
	}
	switch c.DBDriver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("invalid DB_DRIVER %q, want %s or %s", c.DBDriver, db.DriverSQLite, db.DriverPostgres))
	}
	if c.StorageKey == "" {
		errs = append(errs, errors.New("STORAGE_KEY must not be empty"))
	}
	if _, err := c.LanguageTag(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LanguageTag parses Language.
func (c *Config) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("invalid LANGUAGE %q: %w", c.Language, err)
	}
	return tag, nil
}

// Database converts the DB_* settings for db.Open.
func (c *Config) Database() *db.Config {
	return &db.Config{
		Driver:     c.DBDriver,
		Path:       c.DBPath,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		DBName:     c.DBName,
		SSLMode:    c.DBSSLMode,
		MaxElapsed: c.DBRetry,
	}
}

// EventsEnabled reports whether change events should be sent to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.Topic != ""
}
