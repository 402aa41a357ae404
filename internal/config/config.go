package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const placeholderAPIKey = "YOUR_GEMINI_API_KEY_HERE"

// ErrMissingAPIKey is returned when no usable Gemini credential is configured
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is missing or still set to the placeholder value")

var defaultBlockedWords = []string{"fuck", "shit", "bitch", "cunt", "nazi", "porn"}

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Config holds all configuration for the application
type Config struct {
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	RequestTimeout time.Duration
	RequestDelay   time.Duration
	OutputDir      string
	MaxThemeLength int
	BlockedWords   []string
	HTTPAddr       string
	WorkerCron     string
	DB             DBConfig
}

// Load loads the configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		OutputDir:     getEnv("CURSOR_OUTPUT_DIR", "./cursors"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		WorkerCron:    getEnv("WORKER_CRON", "0 */1 * * * *"),
	}
	if config.GeminiAPIKey == "" {
		config.GeminiAPIKey = os.Getenv("API_KEY")
	}

	if timeout, err := strconv.Atoi(os.Getenv("GEMINI_REQUEST_TIMEOUT")); err == nil {
		config.RequestTimeout = time.Duration(timeout) * time.Second
	} else {
		config.RequestTimeout = 60 * time.Second // default value
	}

	if delay, err := strconv.Atoi(os.Getenv("CURSOR_REQUEST_DELAY_MS")); err == nil && delay >= 0 {
		config.RequestDelay = time.Duration(delay) * time.Millisecond
	} else {
		config.RequestDelay = time.Second // default value
	}

	if maxLen, err := strconv.Atoi(os.Getenv("CURSOR_MAX_THEME_LENGTH")); err == nil && maxLen > 0 {
		config.MaxThemeLength = maxLen
	} else {
		config.MaxThemeLength = 100 // default value
	}

	if words := os.Getenv("CURSOR_BLOCKED_WORDS"); words != "" {
		for _, w := range strings.Split(words, ",") {
			if w = strings.TrimSpace(strings.ToLower(w)); w != "" {
				config.BlockedWords = append(config.BlockedWords, w)
			}
		}
	} else {
		config.BlockedWords = append([]string(nil), defaultBlockedWords...)
	}

	// Load database configuration
	dbConfig := DBConfig{
		Host:     os.Getenv("DB_HOST"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_NAME"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	if port, err := strconv.Atoi(os.Getenv("DB_PORT")); err == nil {
		dbConfig.Port = port
	} else {
		dbConfig.Port = 5432 // default PostgreSQL port
	}

	if maxOpenConns, err := strconv.Atoi(os.Getenv("DB_MAX_OPEN_CONNS")); err == nil {
		dbConfig.MaxOpenConns = maxOpenConns
	} else {
		dbConfig.MaxOpenConns = 5 // default value
	}

	if maxIdleConns, err := strconv.Atoi(os.Getenv("DB_MAX_IDLE_CONNS")); err == nil {
		dbConfig.MaxIdleConns = maxIdleConns
	} else {
		dbConfig.MaxIdleConns = 5 // default value
	}

	if connMaxLifetime, err := strconv.Atoi(os.Getenv("DB_CONN_MAX_LIFETIME")); err == nil {
		dbConfig.ConnMaxLifetime = time.Duration(connMaxLifetime) * time.Second
	} else {
		dbConfig.ConnMaxLifetime = 5 * time.Minute // default value
	}

	config.DB = dbConfig

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	key := strings.TrimSpace(c.GeminiAPIKey)
	if key == "" || key == placeholderAPIKey {
		return ErrMissingAPIKey
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL must not be empty")
	}
	return nil
}

// ValidateDB checks the database settings required by the worker
func (c *Config) ValidateDB() error {
	if c.DB.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DB.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.DB.Database == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
