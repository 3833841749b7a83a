// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"-"` // SERVER_TIMEOUT_SECONDS

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Firebase Configuration
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseWebAPIKey             string `mapstructure:"FIREBASE_WEB_API_KEY"`
	IdentityToolkitEndpoint       string `mapstructure:"IDENTITY_TOOLKIT_ENDPOINT"`

	// Document store
	UsersCollection   string `mapstructure:"FIRESTORE_USERS_COLLECTION"`
	RewardsCollection string `mapstructure:"FIRESTORE_REWARDS_COLLECTION"`

	// Registration
	MinPasswordLength int      `mapstructure:"MIN_PASSWORD_LENGTH"`
	DefaultAvatarURL  string   `mapstructure:"DEFAULT_AVATAR_URL"`
	AvatarPresetURLs  []string `mapstructure:"AVATAR_PRESET_URLS"`

	// Audit trail
	AuditDBEnabled         bool          `mapstructure:"AUDIT_DB_ENABLED"`
	AuditDBDriver          string        `mapstructure:"AUDIT_DB_DRIVER"`
	AuditDBSource          string        `mapstructure:"AUDIT_DB_SOURCE"`
	AuditDBMaxIdleConns    int           `mapstructure:"AUDIT_DB_MAX_IDLE_CONNS"`
	AuditDBMaxOpenConns    int           `mapstructure:"AUDIT_DB_MAX_OPEN_CONNS"`
	AuditDBConnMaxLifetime time.Duration `mapstructure:"-"` // AUDIT_DB_CONN_MAX_LIFETIME_MINUTES

	// Cron Jobs
	OrphanReportJobSchedule string        `mapstructure:"ORPHAN_REPORT_SCHEDULE"`
	OrphanReportWindow      time.Duration `mapstructure:"-"` // ORPHAN_REPORT_WINDOW_HOURS

	// Elasticsearch Configuration
	ElasticsearchURL   string `mapstructure:"ELASTICSEARCH_URL"`
	ProfilesIndexName  string `mapstructure:"ELASTICSEARCH_PROFILES_INDEX"`
	ProfileSearchLimit int    `mapstructure:"PROFILE_SEARCH_LIMIT"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("FIREBASE_PROJECT_ID", "") // Optional, inferred from credentials
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("FIREBASE_WEB_API_KEY", "")
	v.SetDefault("IDENTITY_TOOLKIT_ENDPOINT", "")

	v.SetDefault("FIRESTORE_USERS_COLLECTION", "users")
	v.SetDefault("FIRESTORE_REWARDS_COLLECTION", "rewards")

	v.SetDefault("MIN_PASSWORD_LENGTH", 6)
	v.SetDefault("DEFAULT_AVATAR_URL", "")
	v.SetDefault("AVATAR_PRESET_URLS", "")

	v.SetDefault("AUDIT_DB_ENABLED", false)
	v.SetDefault("AUDIT_DB_DRIVER", "postgres")
	v.SetDefault("AUDIT_DB_SOURCE", "host=localhost port=5432 user=postgres password=password dbname=adventure_audit sslmode=disable TimeZone=UTC")
	v.SetDefault("AUDIT_DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("AUDIT_DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("AUDIT_DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("ORPHAN_REPORT_SCHEDULE", "@daily")
	v.SetDefault("ORPHAN_REPORT_WINDOW_HOURS", 24)

	v.SetDefault("ELASTICSEARCH_URL", "")
	v.SetDefault("ELASTICSEARCH_PROFILES_INDEX", "profiles")
	v.SetDefault("PROFILE_SEARCH_LIMIT", 75)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Durations are whole units in the environment.
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.AuditDBConnMaxLifetime = time.Duration(v.GetInt("AUDIT_DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.OrphanReportWindow = time.Duration(v.GetInt("ORPHAN_REPORT_WINDOW_HOURS")) * time.Hour

	// Comma separated in the environment.
	cfg.AvatarPresetURLs = splitList(v.GetString("AVATAR_PRESET_URLS"))

	if strings.TrimSpace(cfg.FirebaseServiceAccountKeyPath) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_SERVICE_ACCOUNT_KEY_PATH is not set. This is required for Firebase Admin SDK initialization")
	}
	if _, err := os.Stat(cfg.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", cfg.FirebaseServiceAccountKeyPath)
	}
	if cfg.MinPasswordLength < 1 {
		return nil, fmt.Errorf("MIN_PASSWORD_LENGTH must be positive, got %d", cfg.MinPasswordLength)
	}

	return &cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
