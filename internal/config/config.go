package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	HTTPPort string

	StoreDriver string
	MongoURI    string
	MongoDB     string
	SQLitePath  string
	RedisURI    string

	JWTSecret        string
	AdminUsername    string
	AdminPassword    string
	SurveyAccessCode string

	AllowedOrigins []string

	LogLevel  string
	LogFormat string

	DraftTTL     time.Duration
	DashboardTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort: getEnv("PORT", "8080"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "slint"),
		SQLitePath:  getEnv("SQLITE_PATH", "slint-survey.db"),
		RedisURI:    getEnv("REDIS_URI", "redis://localhost:6379/0"),

		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin"),
		SurveyAccessCode: getEnv("SURVEY_ACCESS_CODE", "SLINT2026"),

		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DraftTTL:     getDuration("DRAFT_TTL", 8*time.Hour),
		DashboardTTL: getDuration("DASHBOARD_TTL", 5*time.Minute),
	}
}

// InsecureDefaults lists the secret variables still using their built-in value
func (c *Config) InsecureDefaults() []string {
	var names []string
	if os.Getenv("JWT_SECRET") == "" {
		names = append(names, "JWT_SECRET")
	}
	if os.Getenv("ADMIN_PASSWORD") == "" {
		names = append(names, "ADMIN_PASSWORD")
	}
	if os.Getenv("SURVEY_ACCESS_CODE") == "" {
		names = append(names, "SURVEY_ACCESS_CODE")
	}
	return names
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
