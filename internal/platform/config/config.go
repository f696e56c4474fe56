package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// DefaultRoleWeights is the sales-target weight per position used when ROLE_WEIGHTS is not set.
const DefaultRoleWeights = "Manager=0.5,Assistant Manager=0.75,High Jewellery Expert=2.0,Senior Sales Advisor=1.5,Sales Advisor=1.0"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	LogLevel       string
	JWTSecret      string
	JWTIssuer      string

	CORSAllowedOrigins []string
	RateLimit          string

	// Redis is optional; when RedisAddress is empty caches stay in-process and target generation
	// runs without the distributed lock.
	RedisAddress  string
	RedisPassword string

	PubSubProjectID       string
	PubSubTopic           string
	PubSubCredentialsJSON string

	PosthogAPIKey   string
	PosthogEndpoint string

	Ramadan            calendar.DateRange
	TeamRotationAnchor time.Time
	RoleWeights        map[domain.Position]decimal.Decimal

	CoverageCacheTTL        time.Duration
	SnapshotCacheTTL        time.Duration
	TargetGenerationLockTTL time.Duration

	FeatureGuestCoverage bool
	FeatureTaskReminders bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "boutique-ops")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("PUBSUB_PROJECT_ID", "")
	viper.SetDefault("PUBSUB_TOPIC", "boutique-ops-notifications")
	viper.SetDefault("PUBSUB_CREDENTIALS_JSON", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("RAMADAN_START", "2026-02-18")
	viper.SetDefault("RAMADAN_END", "2026-03-19")
	viper.SetDefault("TEAM_ROTATION_ANCHOR", "2026-01-03")
	viper.SetDefault("ROLE_WEIGHTS", DefaultRoleWeights)
	viper.SetDefault("COVERAGE_CACHE_TTL", "2m")
	viper.SetDefault("SNAPSHOT_CACHE_TTL", "10m")
	viper.SetDefault("TARGET_GENERATION_LOCK_TTL", "30s")
	viper.SetDefault("FEATURE_GUEST_COVERAGE", true)
	viper.SetDefault("FEATURE_TASK_REMINDERS", true)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:           viper.GetString("DATABASE_URL"),
		MigrationsPath:        viper.GetString("MIGRATIONS_PATH"),
		Port:                  viper.GetString("PORT"),
		IsProduction:          viper.GetBool("IS_PRODUCTION"),
		LogLevel:              viper.GetString("LOG_LEVEL"),
		JWTSecret:             viper.GetString("JWT_SECRET"),
		JWTIssuer:             viper.GetString("JWT_ISSUER"),
		RateLimit:             viper.GetString("RATE_LIMIT"),
		RedisAddress:          viper.GetString("REDIS_ADDRESS"),
		RedisPassword:         viper.GetString("REDIS_PASSWORD"),
		PubSubProjectID:       viper.GetString("PUBSUB_PROJECT_ID"),
		PubSubTopic:           viper.GetString("PUBSUB_TOPIC"),
		PubSubCredentialsJSON: viper.GetString("PUBSUB_CREDENTIALS_JSON"),
		PosthogAPIKey:         viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:       viper.GetString("POSTHOG_ENDPOINT"),
		FeatureGuestCoverage:  viper.GetBool("FEATURE_GUEST_COVERAGE"),
		FeatureTaskReminders:  viper.GetBool("FEATURE_TASK_REMINDERS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.Ramadan, err = calendar.NewDateRange(viper.GetString("RAMADAN_START"), viper.GetString("RAMADAN_END"))
	if err != nil {
		return nil, fmt.Errorf("invalid RAMADAN_START/RAMADAN_END: %w", err)
	}

	cfg.TeamRotationAnchor, err = calendar.ParseDateKey(viper.GetString("TEAM_ROTATION_ANCHOR"))
	if err != nil {
		return nil, fmt.Errorf("invalid TEAM_ROTATION_ANCHOR: %w", err)
	}
	if !calendar.IsWeekStart(cfg.TeamRotationAnchor) {
		return nil, fmt.Errorf("TEAM_ROTATION_ANCHOR %s is not a Saturday", calendar.DateKey(cfg.TeamRotationAnchor))
	}

	cfg.RoleWeights, err = ParseRoleWeights(viper.GetString("ROLE_WEIGHTS"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROLE_WEIGHTS: %w", err)
	}

	if cfg.CoverageCacheTTL, err = parseDuration("COVERAGE_CACHE_TTL", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SnapshotCacheTTL, err = parseDuration("SNAPSHOT_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.TargetGenerationLockTTL, err = parseDuration("TARGET_GENERATION_LOCK_TTL", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseRoleWeights parses "Position=weight" pairs separated by commas. Every known position must be
// present and every weight must be a non-negative decimal.
func ParseRoleWeights(raw string) (map[domain.Position]decimal.Decimal, error) {
	weights := make(map[domain.Position]decimal.Decimal)
	for _, pair := range splitList(raw) {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q is not Position=weight", pair)
		}
		w, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("weight of %q: %w", name, err)
		}
		if w.IsNegative() {
			return nil, fmt.Errorf("weight of %q is negative", name)
		}
		weights[domain.Position(strings.TrimSpace(name))] = w
	}

	for _, p := range []domain.Position{
		domain.PositionManager,
		domain.PositionAssistantManager,
		domain.PositionHighJewelleryExpert,
		domain.PositionSeniorSalesAdvisor,
		domain.PositionSalesAdvisor,
	} {
		if _, ok := weights[p]; !ok {
			return nil, fmt.Errorf("missing weight for %q", p)
		}
	}
	return weights, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
