package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Log        LogConfig
	Database   DatabaseConfig
	Directory  DirectoryConfig
	Membership MembershipConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// DirectoryConfig holds LDAP directory settings. The three group filters
// gate the corresponding discovery passes during fetch; an empty filter
// skips its pass with a warning.
type DirectoryConfig struct {
	Enabled              bool
	URL                  string // e.g. ldaps://directory.example.com:636
	BindDN               string
	BindPassword         string
	BaseDN               string
	SharedAccountFilter  string // group holding committee/organ accounts
	RoleFilter           string // group holding per-role accounts
	ServiceAccountFilter string // group holding integration accounts
	TimeoutSeconds       int
}

// MembershipConfig holds membership registry API settings
type MembershipConfig struct {
	Enabled        bool
	APIURL         string
	APIKey         string
	TimeoutSeconds int
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SYNCD_ prefix (e.g., SYNCD_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/syncd")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SYNCD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Directory: DirectoryConfig{
			Enabled:              v.GetBool("directory.enabled"),
			URL:                  v.GetString("directory.url"),
			BindDN:               v.GetString("directory.bind_dn"),
			BindPassword:         v.GetString("directory.bind_password"),
			BaseDN:               v.GetString("directory.base_dn"),
			SharedAccountFilter:  v.GetString("directory.shared_account_filter"),
			RoleFilter:           v.GetString("directory.role_filter"),
			ServiceAccountFilter: v.GetString("directory.service_account_filter"),
			TimeoutSeconds:       v.GetInt("directory.timeout_seconds"),
		},
		Membership: MembershipConfig{
			Enabled:        v.GetBool("membership.enabled"),
			APIURL:         v.GetString("membership.api_url"),
			APIKey:         v.GetString("membership.api_key"),
			TimeoutSeconds: v.GetInt("membership.timeout_seconds"),
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
		cfg.App.Name = "sudosos-syncd"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "sudosos"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Directory.TimeoutSeconds == 0 {
		cfg.Directory.TimeoutSeconds = 15
	}
	if cfg.Membership.TimeoutSeconds == 0 {
		cfg.Membership.TimeoutSeconds = 10
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Directory.Enabled {
		if c.Directory.URL == "" {
			return fmt.Errorf("directory.url is required when the directory provider is enabled")
		}
		if c.Directory.BindDN == "" || c.Directory.BindPassword == "" {
			return fmt.Errorf("directory.bind_dn and directory.bind_password are required when the directory provider is enabled")
		}
		if c.Directory.BaseDN == "" {
			return fmt.Errorf("directory.base_dn is required when the directory provider is enabled")
		}
	}

	if c.Membership.Enabled {
		if c.Membership.APIURL == "" {
			return fmt.Errorf("membership.api_url is required when the membership provider is enabled")
		}
		if _, err := url.Parse(c.Membership.APIURL); err != nil {
			return fmt.Errorf("membership.api_url is not a valid URL: %w", err)
		}
		if c.Membership.APIKey == "" {
			return fmt.Errorf("membership.api_key is required when the membership provider is enabled")
		}
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// DirectoryTimeout returns the directory dial/read timeout
func (d *DirectoryConfig) DirectoryTimeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// Timeout returns the membership API client timeout
func (m *MembershipConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}
