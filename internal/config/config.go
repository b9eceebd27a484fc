package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Media    MediaConfig
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	CanonicalHost  string
	AllowedOrigins []string
}

type AuthConfig struct {
	AdminPassword  string
	SessionTTL     time.Duration
	LockoutWindow  time.Duration
	MaxAttempts    int
	SessionCookie  string
	LoginPath      string
	ProtectedPath  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MediaConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	adminPassword := getEnv("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	env := getEnv("ENV", "development")

	cfg := &Config{
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "atelier"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			CanonicalHost:  getEnv("CANONICAL_HOST", ""),
			AllowedOrigins: parseAllowedOrigins(env),
		},
		Auth: AuthConfig{
			AdminPassword: adminPassword,
			SessionTTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			LockoutWindow: getEnvAsDuration("LOCKOUT_WINDOW", 15*time.Minute),
			MaxAttempts:   getEnvAsInt("MAX_LOGIN_ATTEMPTS", 5),
			SessionCookie: "admin_session",
			LoginPath:     "/admin",
			ProtectedPath: "/admin/dashboard",
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Media: MediaConfig{
			Endpoint:      getEnv("MEDIA_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MEDIA_ACCESS_KEY", ""),
			SecretKey:     getEnv("MEDIA_SECRET_KEY", ""),
			Bucket:        getEnv("MEDIA_BUCKET", "atelier-media"),
			UseSSL:        getEnvAsBool("MEDIA_USE_SSL", false),
			PublicBaseURL: getEnv("MEDIA_PUBLIC_BASE_URL", ""),
		},
	}

	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	if err := validateAdminPassword(adminPassword, env); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateAdminPassword enforces minimum standards for the shared admin secret
func validateAdminPassword(secret, env string) error {
	// Bcrypt hashes are pre-validated at hashing time
	if strings.HasPrefix(secret, "$2a$") || strings.HasPrefix(secret, "$2b$") || strings.HasPrefix(secret, "$2y$") {
		return nil
	}

	minLength := 8
	if env == "production" {
		minLength = 16
	}

	if len(secret) < minLength {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters in %s environment (got %d)",
			minLength, env, len(secret))
	}

	weakSecrets := []string{
		"secret", "test", "password", "12345", "changeme",
		"admin", "root", "default", "example",
	}

	secretLower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if secretLower == weak {
			return fmt.Errorf("ADMIN_PASSWORD cannot be a common weak value")
		}
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		originsStr := getEnv("ALLOWED_ORIGINS", "")
		if originsStr == "" {
			return []string{}
		}
		origins := strings.Split(originsStr, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		return origins
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
