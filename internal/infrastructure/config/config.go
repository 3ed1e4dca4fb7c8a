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
	Content    ContentConfig
	Commerce   CommerceConfig
	Backfill   BackfillConfig
	Contact    ContactConfig
	Membership MembershipConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Telemetry  TelemetryConfig
	Profiling  ProfilingConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
	// BasePath mounts every storefront route under a prefix, e.g. "/shop"
	BasePath string
}

// ContentConfig holds the content backend connection settings
type ContentConfig struct {
	BaseURL          string
	APIKey           string
	Timeout          time.Duration
	MaxResponseBytes int64
}

// CommerceConfig holds the commerce vertical connection settings
type CommerceConfig struct {
	BaseURL           string
	APIKey            string
	DefaultCollection string
	WidgetScriptURL   string
	Timeout           time.Duration
}

// BackfillConfig holds tasting-note backfill queue settings
type BackfillConfig struct {
	Enabled        bool
	Workers        int
	QueueSize      int
	TaskTimeout    time.Duration
	DedupeTTL      time.Duration
	FailureLogSize int
	Store          string // memory, redis
}

// ContactConfig holds contact form settings
type ContactConfig struct {
	MaxPerEmailPerHour int
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

// MembershipConfig holds the session cookie settings of the membership provider
type MembershipConfig struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
	// Secret signs session cookies; required in production
	Secret string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // sqlite, postgres
	Path            string // sqlite file path
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

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	MetricsInterval   time.Duration
	LogsEnabled       bool // export zap entries to the collector
	// Database tracing options
	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration
}

// ProfilingConfig holds Pyroscope continuous profiling settings
type ProfilingConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	ProfileTypes    []string
	// SpanProfiles links CPU profiles to trace spans; requires telemetry
	SpanProfiles bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SAANJH_ prefix (e.g., SAANJH_CONTENT_API_KEY)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SAANJH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("app.name"),
			Env:      v.GetString("app.env"),
			Port:     v.GetString("app.port"),
			BasePath: v.GetString("app.base_path"),
		},
		Content: ContentConfig{
			BaseURL:          v.GetString("content.base_url"),
			APIKey:           v.GetString("content.api_key"),
			Timeout:          v.GetDuration("content.timeout"),
			MaxResponseBytes: v.GetInt64("content.max_response_bytes"),
		},
		Commerce: CommerceConfig{
			BaseURL:           v.GetString("commerce.base_url"),
			APIKey:            v.GetString("commerce.api_key"),
			DefaultCollection: v.GetString("commerce.default_collection"),
			WidgetScriptURL:   v.GetString("commerce.widget_script_url"),
			Timeout:           v.GetDuration("commerce.timeout"),
		},
		Backfill: BackfillConfig{
			Enabled:        v.GetBool("backfill.enabled"),
			Workers:        v.GetInt("backfill.workers"),
			QueueSize:      v.GetInt("backfill.queue_size"),
			TaskTimeout:    v.GetDuration("backfill.task_timeout"),
			DedupeTTL:      v.GetDuration("backfill.dedupe_ttl"),
			FailureLogSize: v.GetInt("backfill.failure_log_size"),
			Store:          v.GetString("backfill.store"),
		},
		Contact: ContactConfig{
			MaxPerEmailPerHour: v.GetInt("contact.max_per_email_per_hour"),
			RateLimitRequests:  v.GetInt("contact.rate_limit_requests"),
			RateLimitWindow:    v.GetDuration("contact.rate_limit_window"),
		},
		Membership: MembershipConfig{
			CookieName: v.GetString("membership.cookie_name"),
			MaxAge:     v.GetDuration("membership.max_age"),
			Secure:     v.GetBool("membership.secure"),
			Secret:     v.GetString("membership.secret"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Path:            v.GetString("database.path"),
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
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
		},
		Profiling: ProfilingConfig{
			Enabled:         v.GetBool("profiling.enabled"),
			ServerAddress:   v.GetString("profiling.server_address"),
			ApplicationName: v.GetString("profiling.application_name"),
			ProfileTypes:    v.GetStringSlice("profiling.profile_types"),
			SpanProfiles:    v.GetBool("profiling.span_profiles"),
		},
	}

	// Backfill is on unless explicitly disabled
	if !v.IsSet("backfill.enabled") {
		cfg.Backfill.Enabled = true
	}

	// Session cookies are Secure in production unless configured otherwise
	if !v.IsSet("membership.secure") {
		cfg.Membership.Secure = cfg.App.Env == "production"
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
		cfg.App.Name = "saanjh-storefront"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	cfg.App.BasePath = NormalizeBasePath(cfg.App.BasePath)

	if cfg.Content.Timeout == 0 {
		cfg.Content.Timeout = 10 * time.Second
	}
	if cfg.Content.MaxResponseBytes == 0 {
		cfg.Content.MaxResponseBytes = 10 << 20 // 10MB
	}

	if cfg.Commerce.DefaultCollection == "" {
		cfg.Commerce.DefaultCollection = "all-products"
	}
	if cfg.Commerce.Timeout == 0 {
		cfg.Commerce.Timeout = 10 * time.Second
	}

	if cfg.Backfill.Workers == 0 {
		cfg.Backfill.Workers = 2
	}
	if cfg.Backfill.QueueSize == 0 {
		cfg.Backfill.QueueSize = 64
	}
	if cfg.Backfill.TaskTimeout == 0 {
		cfg.Backfill.TaskTimeout = 15 * time.Second
	}
	if cfg.Backfill.DedupeTTL == 0 {
		cfg.Backfill.DedupeTTL = time.Hour
	}
	if cfg.Backfill.FailureLogSize == 0 {
		cfg.Backfill.FailureLogSize = 100
	}
	if cfg.Backfill.Store == "" {
		cfg.Backfill.Store = "memory"
	}

	if cfg.Contact.MaxPerEmailPerHour == 0 {
		cfg.Contact.MaxPerEmailPerHour = 5
	}
	if cfg.Contact.RateLimitRequests == 0 {
		cfg.Contact.RateLimitRequests = 5
	}
	if cfg.Contact.RateLimitWindow == 0 {
		cfg.Contact.RateLimitWindow = time.Minute
	}

	if cfg.Membership.CookieName == "" {
		cfg.Membership.CookieName = "saanjh_session"
	}
	if cfg.Membership.MaxAge == 0 {
		cfg.Membership.MaxAge = 30 * 24 * time.Hour
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "storefront.db"
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
		cfg.Database.DBName = "storefront"
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

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
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

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 300
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// CORS origins have no wildcard fallback; the JSON API is same-origin until configured
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 30 * time.Second
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}

	if cfg.Profiling.ApplicationName == "" {
		cfg.Profiling.ApplicationName = cfg.Telemetry.ServiceName
	}
}

// NormalizeBasePath turns "", "/", "shop/", "/shop" into "" or "/shop"
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
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

	if c.Content.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Content.BaseURL); err != nil {
			return fmt.Errorf("content.base_url is not a valid URL: %w", err)
		}
	}
	if c.Commerce.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Commerce.BaseURL); err != nil {
			return fmt.Errorf("commerce.base_url is not a valid URL: %w", err)
		}
	}

	switch c.Backfill.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("backfill.store must be memory or redis, got %q", c.Backfill.Store)
	}
	if c.Backfill.Workers < 0 || c.Backfill.QueueSize < 0 {
		return fmt.Errorf("backfill.workers and backfill.queue_size cannot be negative")
	}

	if c.Membership.Secret != "" && len(c.Membership.Secret) < 32 {
		return fmt.Errorf("membership.secret must be at least 32 characters")
	}

	if c.App.Env == "production" {
		if c.Membership.Secret == "" {
			return fmt.Errorf("membership.secret is required in production")
		}
		if c.Content.BaseURL == "" {
			return fmt.Errorf("content.base_url is required in production")
		}
		if !strings.HasPrefix(c.Content.BaseURL, "https://") {
			return fmt.Errorf("content.base_url must use https in production")
		}
		if c.Database.Driver == "postgres" {
			if c.Database.Password == "" {
				return fmt.Errorf("database.password is required in production")
			}
			if c.Database.SSLMode == "disable" {
				return fmt.Errorf("database.sslmode cannot be 'disable' in production")
			}
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production to prevent sensitive data exposure in traces")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.Profiling.Enabled && c.Profiling.ServerAddress == "" {
		return fmt.Errorf("profiling.server_address is required when profiling is enabled")
	}

	return nil
}

// DSN returns the SQLite file path, or the PostgreSQL connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	if d.Driver == "" || d.Driver == "sqlite" {
		return d.Path
	}
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
