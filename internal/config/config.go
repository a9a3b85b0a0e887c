package config

import (
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	Feed       FeedConfig       `yaml:"feed"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Library    LibraryConfig    `yaml:"library"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"15m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// FeedConfig holds the eligibility policy of the daily feed.
type FeedConfig struct {
	DailyQuota      int           `yaml:"daily_quota"      env:"FEED_DAILY_QUOTA"      env-default:"50"`
	RepeatCooldown  time.Duration `yaml:"repeat_cooldown"  env:"FEED_REPEAT_COOLDOWN"  env-default:"168h"`
	DismissCooldown time.Duration `yaml:"dismiss_cooldown" env:"FEED_DISMISS_COOLDOWN" env-default:"720h"`
}

// Policy converts the section into the domain feed policy.
func (c FeedConfig) Policy() domain.FeedPolicy {
	return domain.FeedPolicy{
		DailyQuota:      c.DailyQuota,
		RepeatCooldown:  c.RepeatCooldown,
		DismissCooldown: c.DismissCooldown,
	}
}

// ExtractionConfig holds document analysis settings.
type ExtractionConfig struct {
	APIKey        string        `yaml:"api_key"         env:"ANTHROPIC_API_KEY"`
	Model         string        `yaml:"model"           env:"EXTRACTION_MODEL"           env-default:"claude-sonnet-4-5"`
	MaxTokens     int64         `yaml:"max_tokens"      env:"EXTRACTION_MAX_TOKENS"      env-default:"8192"`
	PollInterval  time.Duration `yaml:"poll_interval"   env:"EXTRACTION_POLL_INTERVAL"   env-default:"2s"`
	Timeout       time.Duration `yaml:"timeout"         env:"EXTRACTION_TIMEOUT"         env-default:"10m"`
	MinQuotes     int           `yaml:"min_quotes"      env:"EXTRACTION_MIN_QUOTES"      env-default:"15"`
	MaxQuotes     int           `yaml:"max_quotes"      env:"EXTRACTION_MAX_QUOTES"      env-default:"20"`
	MaxDocumentMB int           `yaml:"max_document_mb" env:"EXTRACTION_MAX_DOCUMENT_MB" env-default:"32"`
	Breaker       BreakerConfig `yaml:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the analysis API.
type BreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests"      env:"EXTRACTION_BREAKER_MAX_REQUESTS"      env-default:"1"`
	Interval         time.Duration `yaml:"interval"          env:"EXTRACTION_BREAKER_INTERVAL"          env-default:"0s"`
	Timeout          time.Duration `yaml:"timeout"           env:"EXTRACTION_BREAKER_TIMEOUT"           env-default:"60s"`
	MinRequests      uint32        `yaml:"min_requests"      env:"EXTRACTION_BREAKER_MIN_REQUESTS"      env-default:"3"`
	FailureThreshold float64       `yaml:"failure_threshold" env:"EXTRACTION_BREAKER_FAILURE_THRESHOLD" env-default:"0.6"`
}

// MaxDocumentBytes is MaxDocumentMB in bytes.
func (c ExtractionConfig) MaxDocumentBytes() int64 {
	return int64(c.MaxDocumentMB) << 20
}

// LibraryConfig points at the directory of PDF documents.
type LibraryConfig struct {
	Dir           string        `yaml:"dir"            env:"LIBRARY_DIR"            env-default:"./library"`
	Watch         bool          `yaml:"watch"          env:"LIBRARY_WATCH"          env-default:"false"`
	WatchDebounce time.Duration `yaml:"watch_debounce" env:"LIBRARY_WATCH_DEBOUNCE" env-default:"2s"`
	ScanOnStart   bool          `yaml:"scan_on_start"  env:"LIBRARY_SCAN_ON_START"  env-default:"true"`
}

// RateLimitConfig bounds expensive endpoints per client.
type RateLimitConfig struct {
	ExtractPerMinute int           `yaml:"extract_per_minute" env:"RATE_LIMIT_EXTRACT_PER_MINUTE" env-default:"6"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}
