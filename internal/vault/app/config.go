package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Issuer         string   `yaml:"issuer"`          // Optional: issuer of consent markers and reset codes (default: vault)
	ConsentSecret  string   `yaml:"consent_secret"`  // Optional: HMAC secret for consent markers (default: random per start)
	MasterKeyPath  string   `yaml:"master_key_path"` // Optional: path to the key that seals stored passwords (default: ephemeral)
	DatabaseFile   string   `yaml:"database_file"`   // Optional: path to SQLite database file (default: ./vault.db)
	PepperFile     string   `yaml:"pepper_file"`     // Optional: path to file containing pepper for password hashing (default: ./pepper)
	RedisURL       string   `yaml:"redis_url"`       // Optional: redis://... for challenges and expiry markers (default: in-memory)
	AllowedOrigins []string `yaml:"allowed_origins"` // Optional: CORS allow list; empty disables CORS
	SecureCookies  bool     `yaml:"secure_cookies"`  // Mark cookies Secure (default: true outside dev)

	Env                  string        `yaml:"env"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        `yaml:"log_level"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        `yaml:"log_format"`            // Log format (json, text) (default: json)
	Port                 int           `yaml:"port"`                  // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval"` // Housekeeping interval (default: 1h)

	LocationTimeout time.Duration `yaml:"location_timeout"` // Bound on a location lookup (default: 5s)
	CaptureTimeout  time.Duration `yaml:"capture_timeout"`  // Bound on a deterrent capture (default: 5s)
	ChallengeTTL    time.Duration `yaml:"challenge_ttl"`    // Lifetime of an unanswered challenge (default: 10m)
}

func defaultConfig() Config {
	return Config{
		Issuer:               "vault",
		DatabaseFile:         "vault.db",
		PepperFile:           "pepper",
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: 1 * time.Hour,
		LocationTimeout:      5 * time.Second,
		CaptureTimeout:       5 * time.Second,
		ChallengeTTL:         10 * time.Minute,
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file
// named by VAULT_CONFIG_FILE, then environment variables.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("VAULT_CONFIG_FILE"); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Issuer = getEnvOrDefault("VAULT_ISSUER", cfg.Issuer)
	cfg.ConsentSecret = getEnvOrDefault("VAULT_CONSENT_SECRET", cfg.ConsentSecret)
	cfg.MasterKeyPath = getEnvOrDefault("VAULT_MASTER_KEY_PATH", cfg.MasterKeyPath)
	cfg.DatabaseFile = getEnvOrDefault("VAULT_DATABASE_FILE", cfg.DatabaseFile)
	cfg.PepperFile = getEnvOrDefault("VAULT_PEPPER_FILE", cfg.PepperFile)
	cfg.RedisURL = getEnvOrDefault("VAULT_REDIS_URL", cfg.RedisURL)
	cfg.AllowedOrigins = getEnvListOrDefault("VAULT_ALLOWED_ORIGINS", cfg.AllowedOrigins)

	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)
	cfg.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", cfg.HousekeepingInterval)

	cfg.LocationTimeout = getEnvDurationOrDefault("VAULT_LOCATION_TIMEOUT", cfg.LocationTimeout)
	cfg.CaptureTimeout = getEnvDurationOrDefault("VAULT_CAPTURE_TIMEOUT", cfg.CaptureTimeout)
	cfg.ChallengeTTL = getEnvDurationOrDefault("VAULT_CHALLENGE_TTL", cfg.ChallengeTTL)

	// Cookies travel over plain http only in development
	cfg.SecureCookies = getEnvBoolOrDefault("VAULT_SECURE_COOKIES", cfg.SecureCookies || cfg.Env != "dev")

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
