// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/wandrly/wandrly-api/internal/infrastructure/timeutil"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Logging  LoggingConfig
	App      AppConfig
	Search   SearchConfig
	Upstream UpstreamConfig
	Snapshot SnapshotConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"11m"`
}

// TimeoutConfig holds timeout settings for deal searches and upstream calls.
type TimeoutConfig struct {
	Search           time.Duration `env:"TIMEOUT_SEARCH" envDefault:"10m"`
	FareRequest      time.Duration `env:"TIMEOUT_FARE_REQUEST" envDefault:"15s"`
	ReferenceRequest time.Duration `env:"TIMEOUT_REFERENCE_REQUEST" envDefault:"15s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Caller bool   `env:"LOG_CALLER" envDefault:"false"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// SearchConfig holds deal search tuning, region policy and request defaults.
type SearchConfig struct {
	Concurrency      int      `env:"SEARCH_CONCURRENCY" envDefault:"8"`
	Currency         string   `env:"SEARCH_CURRENCY" envDefault:"EUR"`
	Timezone         string   `env:"SEARCH_TIMEZONE" envDefault:"Europe/Dublin"`
	HomeAirports     []string `env:"SEARCH_HOME_AIRPORTS" envSeparator:"," envDefault:"DUB,SNN,ORK,NOC,KIR"`
	ExcludedAirports []string `env:"SEARCH_EXCLUDED_AIRPORTS" envSeparator:"," envDefault:"ABZ,BFS,BHD,BHX,BOH,BRS,CWL,DSA,DND,EDI,EMA,EXT,GLA,HUY,INV,LBA,LDY,LGW,LPL,LTN,MAN,NCL,NQY,PIK,SEN,SOU,STN"`

	DefaultOrigins     []string `env:"SEARCH_DEFAULT_ORIGINS" envSeparator:"," envDefault:"DUB"`
	DefaultDurations   []int    `env:"SEARCH_DEFAULT_DURATIONS" envSeparator:"," envDefault:"5,7"`
	DefaultHorizonDays int      `env:"SEARCH_DEFAULT_HORIZON_DAYS" envDefault:"60"`
	DefaultMaxPrice    float64  `env:"SEARCH_DEFAULT_MAX_PRICE" envDefault:"150"`

	MaxHorizonDays  int `env:"SEARCH_MAX_HORIZON_DAYS" envDefault:"365"`
	MaxDurationDays int `env:"SEARCH_MAX_DURATION_DAYS" envDefault:"60"`
	MaxOrigins      int `env:"SEARCH_MAX_ORIGINS" envDefault:"10"`
}

// UpstreamConfig holds the fare provider endpoints and outbound rate limit.
type UpstreamConfig struct {
	RoutesURL              string  `env:"UPSTREAM_ROUTES_URL" envDefault:"https://www.ryanair.com/api/views/locate/3/routes"`
	AirportsURL            string  `env:"UPSTREAM_AIRPORTS_URL" envDefault:"https://api.ryanair.com/aggregate/3/common?market=en-gb"`
	FaresURL               string  `env:"UPSTREAM_FARES_URL" envDefault:"https://www.ryanair.com/api/farfnd/v4/oneWayFares"`
	RequestsPerSecond      float64 `env:"UPSTREAM_RATE_LIMIT_RPS" envDefault:"10"`
	Burst                  int     `env:"UPSTREAM_RATE_LIMIT_BURST" envDefault:"20"`
	AirportsRemoteFallback bool    `env:"UPSTREAM_AIRPORTS_REMOTE_FALLBACK" envDefault:"false"`
	UserAgent              string  `env:"UPSTREAM_USER_AGENT" envDefault:"wandrly-api/1.0"`
}

// SnapshotConfig selects where reference-data snapshots are kept.
type SnapshotConfig struct {
	Backend        string `env:"SNAPSHOT_BACKEND" envDefault:"file"`
	Dir            string `env:"SNAPSHOT_DIR" envDefault:"./data"`
	RedisAddr      string `env:"SNAPSHOT_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"SNAPSHOT_REDIS_PASSWORD"`
	RedisDB        int    `env:"SNAPSHOT_REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"SNAPSHOT_REDIS_KEY_PREFIX" envDefault:"wandrly:snapshot:"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/metrics"`
}

// Snapshot backends.
const (
	SnapshotBackendFile   = "file"
	SnapshotBackendRedis  = "redis"
	SnapshotBackendMemory = "memory"
)

var iataCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.Search <= 0 {
		return fmt.Errorf("TIMEOUT_SEARCH must be positive")
	}
	if cfg.Timeouts.FareRequest <= 0 {
		return fmt.Errorf("TIMEOUT_FARE_REQUEST must be positive")
	}
	if cfg.Timeouts.ReferenceRequest <= 0 {
		return fmt.Errorf("TIMEOUT_REFERENCE_REQUEST must be positive")
	}

	// A single fare request must fit inside the search it belongs to
	if cfg.Timeouts.FareRequest >= cfg.Timeouts.Search {
		return fmt.Errorf("TIMEOUT_FARE_REQUEST (%s) should be less than TIMEOUT_SEARCH (%s)",
			cfg.Timeouts.FareRequest, cfg.Timeouts.Search)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if err := validateSearch(&cfg.Search); err != nil {
		return err
	}

	if cfg.Upstream.RequestsPerSecond <= 0 {
		return fmt.Errorf("UPSTREAM_RATE_LIMIT_RPS must be positive")
	}
	if cfg.Upstream.Burst < 1 {
		return fmt.Errorf("UPSTREAM_RATE_LIMIT_BURST must be at least 1")
	}
	if cfg.Upstream.RoutesURL == "" || cfg.Upstream.AirportsURL == "" || cfg.Upstream.FaresURL == "" {
		return fmt.Errorf("UPSTREAM_ROUTES_URL, UPSTREAM_AIRPORTS_URL and UPSTREAM_FARES_URL must be set")
	}

	switch cfg.Snapshot.Backend {
	case SnapshotBackendFile:
		if cfg.Snapshot.Dir == "" {
			return fmt.Errorf("SNAPSHOT_DIR is required for the file backend")
		}
	case SnapshotBackendRedis:
		if cfg.Snapshot.RedisAddr == "" {
			return fmt.Errorf("SNAPSHOT_REDIS_ADDR is required for the redis backend")
		}
	case SnapshotBackendMemory:
	default:
		return fmt.Errorf("SNAPSHOT_BACKEND must be one of: file, redis, memory; got %q", cfg.Snapshot.Backend)
	}

	if cfg.Metrics.Enabled && (cfg.Metrics.Path == "" || cfg.Metrics.Path[0] != '/') {
		return fmt.Errorf("METRICS_PATH must start with '/', got %q", cfg.Metrics.Path)
	}

	return nil
}

func validateSearch(s *SearchConfig) error {
	if s.Concurrency < 1 {
		return fmt.Errorf("SEARCH_CONCURRENCY must be at least 1, got %d", s.Concurrency)
	}
	if s.Currency == "" {
		return fmt.Errorf("SEARCH_CURRENCY must not be empty")
	}
	if _, err := timeutil.GetLocation(s.Timezone); err != nil {
		return fmt.Errorf("SEARCH_TIMEZONE: %w", err)
	}

	if len(s.HomeAirports) == 0 {
		return fmt.Errorf("SEARCH_HOME_AIRPORTS must list at least one airport")
	}
	if len(s.DefaultOrigins) == 0 {
		return fmt.Errorf("SEARCH_DEFAULT_ORIGINS must list at least one airport")
	}
	codes := append(append([]string{}, s.HomeAirports...), s.ExcludedAirports...)
	for _, code := range append(codes, s.DefaultOrigins...) {
		if !iataCodeRegex.MatchString(code) {
			return fmt.Errorf("airport codes must be 3 uppercase letters, got %q", code)
		}
	}

	if s.MaxHorizonDays < 1 {
		return fmt.Errorf("SEARCH_MAX_HORIZON_DAYS must be at least 1")
	}
	if s.DefaultHorizonDays < 1 || s.DefaultHorizonDays > s.MaxHorizonDays {
		return fmt.Errorf("SEARCH_DEFAULT_HORIZON_DAYS must be between 1 and %d, got %d", s.MaxHorizonDays, s.DefaultHorizonDays)
	}
	if len(s.DefaultDurations) == 0 {
		return fmt.Errorf("SEARCH_DEFAULT_DURATIONS must list at least one duration")
	}
	for _, d := range s.DefaultDurations {
		if d < 0 || d > s.MaxDurationDays {
			return fmt.Errorf("SEARCH_DEFAULT_DURATIONS entries must be between 0 and %d, got %d", s.MaxDurationDays, d)
		}
	}
	if s.DefaultMaxPrice < 0 {
		return fmt.Errorf("SEARCH_DEFAULT_MAX_PRICE must be non-negative")
	}
	if s.MaxOrigins < 1 {
		return fmt.Errorf("SEARCH_MAX_ORIGINS must be at least 1")
	}
	if len(s.DefaultOrigins) > s.MaxOrigins {
		return fmt.Errorf("SEARCH_DEFAULT_ORIGINS lists %d airports, more than SEARCH_MAX_ORIGINS (%d)", len(s.DefaultOrigins), s.MaxOrigins)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
