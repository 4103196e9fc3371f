package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	DefaultPageSize int
	MaxPageSize     int

	KafkaBrokers []string
	ESURL        string
	ESUser       string
	ESPassword   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		HTTPAddr: EnvDefault("HTTP_ADDR", ":8080"),
		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      EnvDefault("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),

		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		AccessTTL:  time.Duration(EnvIntDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTTL: time.Duration(EnvIntDefault("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,

		DefaultPageSize: EnvIntDefault("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     EnvIntDefault("MAX_PAGE_SIZE", 100),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		ESURL:        os.Getenv("ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	return cfg, nil
}

// DSN builds the Postgres connection string, preferring DATABASE_URL over
// the individual DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
