package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sudosos-syncd", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "sudosos", cfg.Database.DBName)
	assert.False(t, cfg.Directory.Enabled)
	assert.False(t, cfg.Membership.Enabled)
	assert.Equal(t, 15, cfg.Directory.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Membership.TimeoutSeconds)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SYNCD_DATABASE_HOST", "db.internal")
	t.Setenv("SYNCD_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("valid defaults", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())
	})

	t.Run("enabled directory needs url and credentials", func(t *testing.T) {
		cfg := base()
		cfg.Directory.Enabled = true
		assert.Error(t, cfg.validate())

		cfg.Directory.URL = "ldaps://directory.example.com:636"
		cfg.Directory.BindDN = "cn=reader,dc=example,dc=com"
		cfg.Directory.BindPassword = "secret"
		assert.Error(t, cfg.validate())

		cfg.Directory.BaseDN = "dc=example,dc=com"
		assert.NoError(t, cfg.validate())
	})

	t.Run("enabled membership needs url and key", func(t *testing.T) {
		cfg := base()
		cfg.Membership.Enabled = true
		assert.Error(t, cfg.validate())

		cfg.Membership.APIURL = "https://registry.example.com/api"
		assert.Error(t, cfg.validate())

		cfg.Membership.APIKey = "token"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production requires ssl and password", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())

		cfg.Database.Password = "secret"
		assert.Error(t, cfg.validate())

		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "sudosos",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
