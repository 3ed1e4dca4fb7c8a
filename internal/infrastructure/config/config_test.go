package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every SAANJH_ variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "SAANJH_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "saanjh-storefront", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "", cfg.App.BasePath)
		assert.Equal(t, 10*time.Second, cfg.Content.Timeout)
		assert.Equal(t, int64(10<<20), cfg.Content.MaxResponseBytes)
		assert.Equal(t, "all-products", cfg.Commerce.DefaultCollection)
		assert.True(t, cfg.Backfill.Enabled)
		assert.Equal(t, 2, cfg.Backfill.Workers)
		assert.Equal(t, 64, cfg.Backfill.QueueSize)
		assert.Equal(t, "memory", cfg.Backfill.Store)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "storefront.db", cfg.Database.Path)
		assert.Equal(t, "saanjh-storefront", cfg.Telemetry.ServiceName)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("loads values from environment variables with SAANJH prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SAANJH_APP_PORT", "9000")
		t.Setenv("SAANJH_APP_BASE_PATH", "shop/")
		t.Setenv("SAANJH_CONTENT_BASE_URL", "https://cms.example.com/api")
		t.Setenv("SAANJH_CONTENT_API_KEY", "secret")
		t.Setenv("SAANJH_CONTENT_TIMEOUT", "3s")
		t.Setenv("SAANJH_BACKFILL_ENABLED", "false")
		t.Setenv("SAANJH_BACKFILL_WORKERS", "4")
		t.Setenv("SAANJH_BACKFILL_STORE", "redis")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "/shop", cfg.App.BasePath)
		assert.Equal(t, "https://cms.example.com/api", cfg.Content.BaseURL)
		assert.Equal(t, "secret", cfg.Content.APIKey)
		assert.Equal(t, 3*time.Second, cfg.Content.Timeout)
		assert.False(t, cfg.Backfill.Enabled)
		assert.Equal(t, 4, cfg.Backfill.Workers)
		assert.Equal(t, "redis", cfg.Backfill.Store)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SAANJH_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("membership cookie defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "saanjh_session", cfg.Membership.CookieName)
		assert.Equal(t, 30*24*time.Hour, cfg.Membership.MaxAge)
		assert.False(t, cfg.Membership.Secure)
	})

	t.Run("production requires https content backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SAANJH_APP_ENV", "production")
		t.Setenv("SAANJH_MEMBERSHIP_SECRET", strings.Repeat("s", 32))
		t.Setenv("SAANJH_CONTENT_BASE_URL", "http://cms.internal")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "https")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())
	})

	t.Run("unknown backfill store", func(t *testing.T) {
		cfg := base()
		cfg.Backfill.Store = "etcd"
		assert.Error(t, cfg.validate())
	})

	t.Run("production rejects wildcard CORS", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Content.BaseURL = "https://cms.example.com"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})

	t.Run("production postgres needs ssl", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Content.BaseURL = "https://cms.example.com"
		cfg.Membership.Secret = strings.Repeat("s", 32)
		cfg.Database.Driver = "postgres"
		cfg.Database.Password = "pw"
		assert.Error(t, cfg.validate())

		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})

	t.Run("membership secret", func(t *testing.T) {
		cfg := base()
		cfg.Membership.Secret = "short"
		assert.Error(t, cfg.validate())

		cfg.Membership.Secret = strings.Repeat("s", 32)
		assert.NoError(t, cfg.validate())

		cfg = base()
		cfg.App.Env = "production"
		cfg.Content.BaseURL = "https://cms.example.com"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "membership.secret")
	})

	t.Run("sampling ratio bounds", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})

	t.Run("profiling needs a server", func(t *testing.T) {
		cfg := base()
		cfg.Profiling.Enabled = true
		assert.Error(t, cfg.validate())

		cfg.Profiling.ServerAddress = "http://pyroscope:4040"
		assert.NoError(t, cfg.validate())
	})
}

func TestNormalizeBasePath(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"/":         "",
		"shop":      "/shop",
		"/shop/":    "/shop",
		" /a/b/ ":   "/a/b",
		"//rituals": "/rituals",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeBasePath(in), "input %q", in)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5432,
		User:     "store",
		Password: "p@ss word",
		DBName:   "storefront",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.True(t, strings.HasPrefix(dsn, "postgres://store:"))
	assert.Contains(t, dsn, "@db:5432/storefront?sslmode=require")
	assert.NotContains(t, dsn, "p@ss word")

	sqlite := DatabaseConfig{Driver: "sqlite", Path: "data/storefront.db"}
	assert.Equal(t, "data/storefront.db", sqlite.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
