package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "")
		t.Setenv("DB_DRIVER", "")
		t.Setenv("JWT_TTL", "")
		t.Setenv("CORS_ORIGINS", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "5000", cfg.Server.Port)
		assert.Equal(t, DriverMongo, cfg.Database.Driver)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "9000")
		t.Setenv("DB_DRIVER", "Postgres")
		t.Setenv("DATABASE_URL", "postgres://localhost/projects")
		t.Setenv("JWT_TTL", "30m")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Server.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("rejects a bad ttl", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_TTL", "soon")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_TTL")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "5000"},
			Database: DatabaseConfig{Driver: DriverMemory},
			Auth:     AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid memory config", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "PORT"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "redis" }, wantErr: "unsupported DB_DRIVER"},
		{name: "postgres without url", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "mongo without uri", mutate: func(c *Config) {
			c.Database.Driver = DriverMongo
			c.Database.MongoDatabase = "projects"
		}, wantErr: "MONGO_URI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "redis")

	_, err := Load()
	require.Error(t, err)

	cfg, err := LoadWithOverrides(Overrides{Port: "7000", Driver: "MEMORY"})
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)

	cfg, err = LoadWithOverrides(Overrides{Driver: DriverMemory})
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
}
