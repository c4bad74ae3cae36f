package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server settings
	ServerPort   string        `json:"server_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
	Debug        bool          `json:"debug"`

	// Application paths
	LogDir  string `json:"log_dir"`
	TempDir string `json:"temp_dir"`

	// Middleware settings
	Middleware MiddlewareConfig `json:"middleware"`

	// CORS Configuration
	CORS CORSConfig `json:"cors"`

	// Rate Limiting
	RateLimit RateLimitConfig `json:"rate_limit"`

	// Database settings
	Database DatabaseConfig `json:"database"`

	// YouTube acquisition settings
	YouTube YouTubeConfig `json:"youtube"`

	// Summarization settings
	Summary SummaryConfig `json:"summary"`

	// Optional S3-compatible transcript archive
	Storage StorageConfig `json:"storage"`

	// Application version
	Version string `json:"version"`

	// Request and shutdown timeouts
	RequestTimeout  time.Duration `json:"request_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Concurrent request ceiling enforced at admission
	MaxConcurrentRequests int `json:"max_concurrent_requests"`
}

type MiddlewareConfig struct {
	EnableRecover   bool `json:"enable_recover"`
	EnableRequestID bool `json:"enable_request_id"`
	EnableLogger    bool `json:"enable_logger"`
	EnableTimeout   bool `json:"enable_timeout"`
	EnableCORS      bool `json:"enable_cors"`
	EnableRateLimit bool `json:"enable_rate_limit"`
}

type DatabaseConfig struct {
	Path           string `json:"path"`
	MaxConnections int    `json:"max_connections"`
}

type YouTubeConfig struct {
	// RequestTimeout bounds one whole acquisition attempt; also the base of
	// the pipeline's elapsed-time budget.
	RequestTimeout time.Duration `json:"request_timeout"`
	// SocketTimeout bounds a single upstream HTTP call.
	SocketTimeout time.Duration `json:"socket_timeout"`
	// Retries per client identity profile.
	Retries int `json:"retries"`
	// SegmentLimit caps fetched playlist segments per subtitle track.
	SegmentLimit int `json:"segment_limit"`
	// PreferredLanguages are matched against track names and codes.
	PreferredLanguages []string `json:"preferred_languages"`
	// CookieFile is an optional Netscape-format cookie file for upstream
	// authentication.
	CookieFile string `json:"cookie_file"`
}

type SummaryConfig struct {
	APIKey       string  `json:"-"`
	ModelName    string  `json:"model_name"`
	ChunkSize    int     `json:"chunk_size"`
	ChunkOverlap int     `json:"chunk_overlap"`
	MaxChunks    int     `json:"max_chunks"`
	Temperature  float32 `json:"temperature"`
	TopP         float32 `json:"top_p"`
}

type StorageConfig struct {
	AccessKey string `json:"-"`
	SecretKey string `json:"-"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
}

func (s StorageConfig) Enabled() bool {
	return s.AccessKey != "" && s.SecretKey != "" && s.Endpoint != "" && s.Bucket != ""
}

type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerMinute int  `json:"requests_per_minute"`
	BurstSize         int  `json:"burst_size"`
}

// Default configurations
func defaultDevConfig() MiddlewareConfig {
	return MiddlewareConfig{
		EnableRecover:   true,
		EnableRequestID: true,
		EnableLogger:    true,
		EnableTimeout:   false, // Disabled for easier debugging
		EnableCORS:      true,
		EnableRateLimit: false, // Disabled for testing
	}
}

func defaultProdConfig() MiddlewareConfig {
	return MiddlewareConfig{
		EnableRecover:   true,
		EnableRequestID: true,
		EnableLogger:    true,
		EnableTimeout:   true,
		EnableCORS:      true,
		EnableRateLimit: true,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Server settings
		ServerPort:   getEnv("SERVER_PORT", "8000"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 120*time.Second),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		Debug:        getEnvAsBool("DEBUG", false),

		// Application paths
		LogDir:  getEnv("LOG_DIR", "/var/log/smart-summarizer"),
		TempDir: getEnv("TEMP_DIR", "/tmp/smart-summarizer"),

		// Application version
		Version: getEnv("VERSION", "1.3.2"),

		// Request and shutdown timeouts
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 3*time.Minute),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		MaxConcurrentRequests: getEnvAsInt("MAX_CONCURRENT_REQUESTS", 10),

		// CORS Configuration
		CORS: CORSConfig{
			Enabled:        getEnvAsBool("CORS_ENABLED", true),
			AllowedOrigins: getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsStringSlice(
				"CORS_ALLOWED_METHODS",
				[]string{"GET", "POST", "OPTIONS"},
			),
			AllowedHeaders:   getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			ExposedHeaders:   getEnvAsStringSlice("CORS_EXPOSED_HEADERS", []string{}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},

		// Rate Limiting
		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},

		// Database
		Database: DatabaseConfig{
			Path:           getEnv("DB_PATH", "/var/lib/smart-summarizer/data.db"),
			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 10),
		},

		// YouTube acquisition
		YouTube: YouTubeConfig{
			RequestTimeout: getEnvAsDuration("YT_REQUEST_TIMEOUT", 20*time.Second),
			SocketTimeout:  getEnvAsDuration("YT_SOCKET_TIMEOUT", 10*time.Second),
			Retries:        getEnvAsInt("YT_RETRIES", 2),
			SegmentLimit:   getEnvAsInt("YT_SEGMENT_LIMIT", 30),
			PreferredLanguages: getEnvAsStringSlice(
				"YT_PREFERRED_LANGUAGES",
				[]string{"english", "en", "en-us", "en-gb"},
			),
			CookieFile: getEnv("YTDLP_COOKIES", ""),
		},

		// Summarization
		Summary: SummaryConfig{
			APIKey:       getEnv("GEMINI_API_KEY", ""),
			ModelName:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			ChunkSize:    getEnvAsInt("SUMMARY_CHUNK_SIZE", 80000),
			ChunkOverlap: getEnvAsInt("SUMMARY_CHUNK_OVERLAP", 300),
			MaxChunks:    getEnvAsInt("SUMMARY_MAX_CHUNKS", 2),
			Temperature:  0.3,
			TopP:         0.9,
		},

		// Optional transcript archive
		Storage: StorageConfig{
			AccessKey: getEnv("SPACES_ACCESS_KEY", ""),
			SecretKey: getEnv("SPACES_SECRET_KEY", ""),
			Region:    getEnv("SPACES_REGION", "us-east-1"),
			Endpoint:  getEnv("SPACES_ENDPOINT", ""),
			Bucket:    getEnv("SPACES_BUCKET", ""),
		},

		// Middleware
		Middleware: defaultDevConfig(),
	}

	if os.Getenv("ENV") == "production" {
		cfg.Middleware = defaultProdConfig()
	}

	// A configured but missing cookie file is ignored with a warning; the
	// upstream calls simply go out unauthenticated.
	if cfg.YouTube.CookieFile != "" {
		if _, err := os.Stat(cfg.YouTube.CookieFile); os.IsNotExist(err) {
			logrus.WithField("path", cfg.YouTube.CookieFile).
				Warn("Cookie file not found, continuing without cookies")
			cfg.YouTube.CookieFile = ""
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validatePaths(c); err != nil {
		return err
	}

	if err := validateTimeouts(c); err != nil {
		return err
	}

	if c.YouTube.SegmentLimit <= 0 {
		return fmt.Errorf("segment limit must be positive")
	}
	if c.Summary.ChunkSize <= c.Summary.ChunkOverlap {
		return fmt.Errorf("chunk size must exceed chunk overlap")
	}
	if c.MaxConcurrentRequests <= 0 {
		return fmt.Errorf("max concurrent requests must be positive")
	}

	return nil
}

func validatePaths(c *Config) error {
	paths := []struct {
		path string
		name string
	}{
		{c.LogDir, "log directory"},
		{c.TempDir, "temp directory"},
		{filepath.Dir(c.Database.Path), "database directory"},
	}

	for _, p := range paths {
		if err := os.MkdirAll(p.path, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p.name, err)
		}
	}

	return nil
}

func validateTimeouts(c *Config) error {
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.YouTube.RequestTimeout <= 0 {
		return fmt.Errorf("youtube request timeout must be positive")
	}
	return nil
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return strings.Split(value, ",")
		}
	}
	return defaultValue
}
