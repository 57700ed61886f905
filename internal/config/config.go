package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Meal         MealConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// MealConfig defines token lifetime and meal window policy parameters.
// Timezone is the single canonical location used to derive the calendar
// date for duplicate detection and the weekday for day eligibility.
type MealConfig struct {
	Timezone              string
	WindowMode            string
	TokenTTLMinutes       int
	TokenRetentionMinutes int
	IssueRequireWindow    bool
	BreakfastWindow       string
	LunchWindow           string
	DinnerWindow          string
}

// NotificationConfig holds sink endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// Window policy modes.
const (
	WindowModeTable   = "table"
	WindowModeSession = "session"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	windowMode := getEnv("MEAL_WINDOW_MODE", WindowModeSession)
	if windowMode != WindowModeTable && windowMode != WindowModeSession {
		return nil, fmt.Errorf("invalid MEAL_WINDOW_MODE: %q", windowMode)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "meal-access-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Meal: MealConfig{
			Timezone:              getEnv("MEAL_TIMEZONE", "UTC"),
			WindowMode:            windowMode,
			TokenTTLMinutes:       getEnvAsInt("MEAL_TOKEN_TTL_MINUTES", 5),
			TokenRetentionMinutes: getEnvAsInt("MEAL_TOKEN_RETENTION_MINUTES", 15),
			IssueRequireWindow:    getEnvAsBool("ISSUE_REQUIRE_WINDOW", false),
			BreakfastWindow:       getEnv("MEAL_TABLE_BREAKFAST", "07:30-09:30"),
			LunchWindow:           getEnv("MEAL_TABLE_LUNCH", "12:00-14:30"),
			DinnerWindow:          getEnv("MEAL_TABLE_DINNER", "19:00-21:30"),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if cfg.Meal.TokenTTLMinutes <= 0 {
		return nil, fmt.Errorf("MEAL_TOKEN_TTL_MINUTES must be positive")
	}
	if cfg.Meal.TokenRetentionMinutes < cfg.Meal.TokenTTLMinutes {
		return nil, fmt.Errorf("MEAL_TOKEN_RETENTION_MINUTES must be >= MEAL_TOKEN_TTL_MINUTES")
	}
	if _, err := time.LoadLocation(cfg.Meal.Timezone); err != nil {
		return nil, fmt.Errorf("invalid MEAL_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the token lifetime.
func (m MealConfig) TokenTTL() time.Duration {
	return time.Duration(m.TokenTTLMinutes) * time.Minute
}

// TokenRetention returns how long a token record is kept in Redis. Expired
// tokens are never swept by the core; the Redis TTL is the external cleanup,
// and the retention window keeps them visible long enough to produce the
// distinct "Token Expired" denial.
func (m MealConfig) TokenRetention() time.Duration {
	return time.Duration(m.TokenRetentionMinutes) * time.Minute
}

// Location resolves the configured timezone.
func (m MealConfig) Location() *time.Location {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
