package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	APIBaseURL string
	APITimeout time.Duration

	DBDriver string
	DBDSN    string

	SessionResolveWait time.Duration
	CookieSecure       bool
	LoginRatePerMinute int
	CSRFKey            string
	CORSOrigins        []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf("no .env file loaded: %v", err)
	}

	return Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		APITimeout: getDuration("API_TIMEOUT", 10*time.Second),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBDSN:    getEnv("DB_DSN", "portal.db"),

		SessionResolveWait: getDuration("SESSION_RESOLVE_WAIT", 300*time.Millisecond),
		CookieSecure:       getBool("COOKIE_SECURE", false),
		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),
		CSRFKey:            os.Getenv("CSRF_KEY"),
		CORSOrigins:        getList("CORS_ORIGINS", []string{"http://localhost:8080"}),
	}
}

// Validate rejects configurations the portal cannot start with.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.DBDriver != "sqlite" && c.DBDriver != "mysql" {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return fmt.Errorf("CSRF_KEY must be exactly 32 bytes, got %d", len(c.CSRFKey))
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	return nil
}

// InitDB opens the token store database and migrates its schema.
func InitDB(c Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch c.DBDriver {
	case "mysql":
		dialector = mysql.Open(c.DBDSN)
	default:
		dialector = sqlite.Open(c.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", c.DBDriver, err)
	}

	if err := db.AutoMigrate(&models.StoredToken{}); err != nil {
		return nil, fmt.Errorf("migrate token store: %w", err)
	}
	utils.InfoLogger.Infof("token store ready (%s)", c.DBDriver)
	return db, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.ErrorLogger.Printf("invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		utils.ErrorLogger.Printf("invalid %s=%q, using %t", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		utils.ErrorLogger.Printf("invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
