package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverMongo     = "mongo"
	DriverMemory    = "memory"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	PostgREST PostgRESTConfig `mapstructure:"postgrest"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StoreConfig selects the backend every repository talks to.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// PostgRESTConfig points at the hosted database's REST endpoint.
type PostgRESTConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Schema  string        `mapstructure:"schema"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type PostgresConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// DatabaseConfig configures the MongoDB backend.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// Enabled reports whether media signing is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig verifies session tokens issued by the auth provider.
type JWTConfig struct {
	Secret       string `mapstructure:"secret"`
	PremiumClaim string `mapstructure:"premium_claim"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// LoadConfig reads configuration from config.yaml in path and from environment variables.
// Nested keys map to upper-case variables with underscores, e.g. store.driver -> STORE_DRIVER.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("store.driver", DriverPostgREST)
	v.SetDefault("postgrest.url", "")
	v.SetDefault("postgrest.api_key", "")
	v.SetDefault("postgrest.schema", "public")
	v.SetDefault("postgrest.timeout", "30s")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_open_conns", 25)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_coach")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.presign_expiry", "15m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.premium_claim", "is_premium")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	err = v.ReadInConfig()
	// The config file is optional; environment variables may carry everything.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return config, errors.Wrap(err, "reading config file")
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "decoding config")
	}
	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks that the selected store driver has what it needs.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgREST:
		if c.PostgREST.URL == "" || c.PostgREST.APIKey == "" {
			return errors.New("postgrest driver requires postgrest.url and postgrest.api_key")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres driver requires postgres.dsn")
		}
	case DriverMongo:
		if c.Database.URI == "" || c.Database.Name == "" {
			return errors.New("mongo driver requires database.uri and database.name")
		}
	case DriverMemory:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	return nil
}
