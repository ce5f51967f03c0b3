package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/project-registry/logutils"
)

// Supported persistence drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	PostgresURL   string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AppConfig struct {
	Name        string
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
}

// LoadEnv loads environment variables from the given .env files, or ./.env
// when none are given. A missing file is not an error.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logutils.Log.Debug(".env file not found, using system environment variables")
	}
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// Overrides replace environment values, typically from command line flags.
// Empty fields leave the environment value in place.
type Overrides struct {
	Port   string
	Driver string
}

// Load builds the configuration from the process environment.
// LoadEnv should be called first when a .env file is expected.
func Load() (*Config, error) {
	return LoadWithOverrides(Overrides{})
}

// LoadWithOverrides is Load with flag values applied before validation.
func LoadWithOverrides(o Overrides) (*Config, error) {
	ttl, err := getEnvAsDuration("JWT_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        GetEnv("PORT", "5000"),
			CORSOrigins: splitList(GetEnv("CORS_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(GetEnv("DB_DRIVER", DriverMongo)),
			MongoURI:      GetEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: GetEnv("MONGO_DATABASE", "projects"),
			PostgresURL:   GetEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret: GetEnv("JWT_SECRET", ""),
			TokenTTL:  ttl,
		},
		App: AppConfig{
			Name:        GetEnv("APP_NAME", "project-registry"),
			Environment: GetEnv("APP_ENV", "development"),
			LogLevel:    GetEnv("LOG_LEVEL", "info"),
			LogFormat:   GetEnv("LOG_FORMAT", "text"),
			Version:     GetEnv("APP_VERSION", "1.0.0"),
		},
	}

	if o.Port != "" {
		cfg.Server.Port = o.Port
	}
	if o.Driver != "" {
		cfg.Database.Driver = strings.ToLower(o.Driver)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo driver")
		}
		if c.Database.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required for the mongo driver")
		}
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s, %s or %s)",
			c.Database.Driver, DriverMongo, DriverPostgres, DriverMemory)
	}

	return nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
