package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Remote    RemoteConfig
	Auth      AuthConfig
	DB        DBConfig
	Log       LogConfig
	CORS      CORSConfig
	Bulk      BulkConfig
	Clearance ClearanceConfig
	Email     EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// RemoteConfig points the gateway at the remote billing API.
type RemoteConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the per-request timeout for remote calls.
func (r *RemoteConfig) Timeout() time.Duration {
	if r.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(r.TimeoutSecs) * time.Second
}

// AuthConfig holds the settings used to validate session tokens issued by the
// remote billing API.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	RoleClaim string `mapstructure:"role_claim"`
}

// DBConfig holds PostgreSQL connection settings for the audit log.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BulkConfig bounds the fan-out of bulk operations against the remote API.
type BulkConfig struct {
	Concurrency   int     `mapstructure:"concurrency"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
	// MaxRetryWaitSecs caps how long one item waits on a remote Retry-After
	// before its single retry. Zero disables the retry.
	MaxRetryWaitSecs int `mapstructure:"max_retry_wait_secs"`
}

func (c *BulkConfig) MaxRetryWait() time.Duration {
	return time.Duration(c.MaxRetryWaitSecs) * time.Second
}

// ClearanceConfig holds clearance check settings.
type ClearanceConfig struct {
	CheckTimeoutSecs int `mapstructure:"check_timeout_secs"`
}

// CheckTimeout returns the upper bound for a single clearance query.
func (c *ClearanceConfig) CheckTimeout() time.Duration {
	if c.CheckTimeoutSecs <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.CheckTimeoutSecs) * time.Second
}

// EmailConfig holds clearance notification settings.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	NotifyAddress string `mapstructure:"notify_address"`
	ConsoleURL    string `mapstructure:"console_url"`
}

// Load reads configuration from environment variables with the DGICONSOLE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DGICONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Remote billing API defaults
	v.SetDefault("remote.base_url", "http://localhost:5000/api")
	v.SetDefault("remote.timeout_secs", 30)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.role_claim", "role")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "dgiconsole")
	v.SetDefault("db.password", "dgiconsole_secret")
	v.SetDefault("db.name", "dgiconsole_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Bulk defaults
	v.SetDefault("bulk.concurrency", 4)
	v.SetDefault("bulk.rate_per_second", 10.0)
	v.SetDefault("bulk.burst", 4)
	v.SetDefault("bulk.max_retry_wait_secs", 10)

	// Clearance defaults
	v.SetDefault("clearance.check_timeout_secs", 20)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-3")
	v.SetDefault("email.from_address", "noreply@dgiconsole.local")
	v.SetDefault("email.from_name", "DGI Console")
	v.SetDefault("email.notify_address", "")
	v.SetDefault("email.console_url", "http://localhost:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "DGICONSOLE_SERVER_PORT",
		"server.read_timeout":          "DGICONSOLE_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "DGICONSOLE_SERVER_WRITE_TIMEOUT",
		"server.environment":           "DGICONSOLE_SERVER_ENVIRONMENT",
		"remote.base_url":              "DGICONSOLE_REMOTE_BASE_URL",
		"remote.timeout_secs":          "DGICONSOLE_REMOTE_TIMEOUT_SECS",
		"auth.jwt_secret":              "DGICONSOLE_AUTH_JWT_SECRET",
		"auth.issuer":                  "DGICONSOLE_AUTH_ISSUER",
		"auth.role_claim":              "DGICONSOLE_AUTH_ROLE_CLAIM",
		"db.host":                      "DGICONSOLE_DB_HOST",
		"db.port":                      "DGICONSOLE_DB_PORT",
		"db.user":                      "DGICONSOLE_DB_USER",
		"db.password":                  "DGICONSOLE_DB_PASSWORD",
		"db.name":                      "DGICONSOLE_DB_NAME",
		"db.sslmode":                   "DGICONSOLE_DB_SSLMODE",
		"db.max_open":                  "DGICONSOLE_DB_MAX_OPEN",
		"db.max_idle":                  "DGICONSOLE_DB_MAX_IDLE",
		"log.level":                    "DGICONSOLE_LOG_LEVEL",
		"log.format":                   "DGICONSOLE_LOG_FORMAT",
		"log.output":                   "DGICONSOLE_LOG_OUTPUT",
		"cors.allowed_origins":         "DGICONSOLE_CORS_ALLOWED_ORIGINS",
		"bulk.concurrency":             "DGICONSOLE_BULK_CONCURRENCY",
		"bulk.rate_per_second":         "DGICONSOLE_BULK_RATE_PER_SECOND",
		"bulk.burst":                   "DGICONSOLE_BULK_BURST",
		"bulk.max_retry_wait_secs":     "DGICONSOLE_BULK_MAX_RETRY_WAIT_SECS",
		"clearance.check_timeout_secs": "DGICONSOLE_CLEARANCE_CHECK_TIMEOUT_SECS",
		"email.provider":               "DGICONSOLE_EMAIL_PROVIDER",
		"email.region":                 "DGICONSOLE_EMAIL_REGION",
		"email.access_key":             "DGICONSOLE_EMAIL_ACCESS_KEY",
		"email.secret_key":             "DGICONSOLE_EMAIL_SECRET_KEY",
		"email.from_address":           "DGICONSOLE_EMAIL_FROM_ADDRESS",
		"email.from_name":              "DGICONSOLE_EMAIL_FROM_NAME",
		"email.notify_address":         "DGICONSOLE_EMAIL_NOTIFY_ADDRESS",
		"email.console_url":            "DGICONSOLE_EMAIL_CONSOLE_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DGICONSOLE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DGICONSOLE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Remote = RemoteConfig{
		BaseURL:     strings.TrimRight(v.GetString("remote.base_url"), "/"),
		TimeoutSecs: v.GetInt("remote.timeout_secs"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
		RoleClaim: v.GetString("auth.role_claim"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Bulk = BulkConfig{
		Concurrency:   v.GetInt("bulk.concurrency"),
		RatePerSecond: v.GetFloat64("bulk.rate_per_second"),
		Burst:         v.GetInt("bulk.burst"),

		MaxRetryWaitSecs: v.GetInt("bulk.max_retry_wait_secs"),
	}
	if cfg.Bulk.Concurrency <= 0 {
		return nil, fmt.Errorf("bulk.concurrency must be positive, got %d", cfg.Bulk.Concurrency)
	}

	cfg.Clearance = ClearanceConfig{
		CheckTimeoutSecs: v.GetInt("clearance.check_timeout_secs"),
	}

	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		AccessKey:     v.GetString("email.access_key"),
		SecretKey:     v.GetString("email.secret_key"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		NotifyAddress: v.GetString("email.notify_address"),
		ConsoleURL:    v.GetString("email.console_url"),
	}

	return cfg, nil
}
