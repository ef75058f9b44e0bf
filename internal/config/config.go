package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the complete service configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	Auth     AuthConfig     `toml:"auth"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

// ServerConfig contains HTTP listener and logging settings
type ServerConfig struct {
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// DatabaseConfig contains the Postgres connection string
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// RedisConfig contains cache connection settings
type RedisConfig struct {
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	TTL      time.Duration `toml:"ttl"`
}

// StorageConfig contains MinIO settings for uploaded category icons
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

// AuthConfig contains bearer token settings. JWKSURL takes precedence over Secret.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	JWKSURL   string `toml:"jwks_url"`
}

// CatalogConfig contains catalog engine settings
type CatalogConfig struct {
	RefreshInterval time.Duration `toml:"refresh_interval"`
	TableFile       string        `toml:"table_file"`
}

// Default returns the development defaults
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", LogLevel: "info"},
		Database: DatabaseConfig{},
		Redis:    RedisConfig{Addr: "localhost:6379", TTL: 10 * time.Minute},
		Storage: StorageConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "uploads",
		},
		Catalog: CatalogConfig{RefreshInterval: 5 * time.Minute},
	}
}

// LoadFile loads configuration from a TOML file on top of the defaults
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return cfg, nil
}

// Load reads a local .env file when present, then an optional TOML file named by CONFIG_FILE,
// then environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		loaded, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("PORT", &c.Server.Port)
	str("LOG_LEVEL", &c.Server.LogLevel)
	str("DATABASE_URL", &c.Database.URL)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	str("MINIO_ENDPOINT", &c.Storage.Endpoint)
	str("MINIO_ACCESS_KEY", &c.Storage.AccessKey)
	str("MINIO_SECRET_KEY", &c.Storage.SecretKey)
	str("UPLOADS_BUCKET", &c.Storage.Bucket)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("JWKS_URL", &c.Auth.JWKSURL)
	str("CATALOG_TABLE_FILE", &c.Catalog.TableFile)

	if v, ok := lookup("REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB must be an integer: %w", err)
		}
		c.Redis.DB = db
	}
	if v, ok := lookup("MINIO_USE_SSL"); ok && v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MINIO_USE_SSL must be a boolean: %w", err)
		}
		c.Storage.UseSSL = useSSL
	}
	if v, ok := lookup("CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL must be a duration: %w", err)
		}
		c.Redis.TTL = d
	}
	if v, ok := lookup("CATALOG_REFRESH_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CATALOG_REFRESH_INTERVAL must be a duration: %w", err)
		}
		c.Catalog.RefreshInterval = d
	}
	return nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWKSURL == "" {
		return errors.New("JWT_SECRET or JWKS_URL is required")
	}
	if c.Redis.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	if c.Catalog.RefreshInterval < time.Second {
		return errors.New("CATALOG_REFRESH_INTERVAL must be at least 1s")
	}
	return nil
}
