package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	MySQLUser     string
	MySQLPassword string
	MySQLProtocol string
	MySQLAddress  string
	MySQLDBName   string

	SessionSecret string
	SessionTTL    time.Duration
	Location      *time.Location
	SecureCookie  bool

	SlackToken         string
	SlackSigningSecret string
	SlackChannel       string
}

// Load reads the environment, after applying an optional .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	loc, err := time.LoadLocation(getenv("TIME_ZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("load location: %w", err)
	}

	cfg := Config{
		Port:               getenv("PORT", "8080"),
		MySQLUser:          os.Getenv("MYSQL_USER"),
		MySQLPassword:      os.Getenv("MYSQL_PASSWORD"),
		MySQLProtocol:      getenv("MYSQL_PROTOCOL", "tcp"),
		MySQLAddress:       os.Getenv("MYSQL_ADDRESS"),
		MySQLDBName:        os.Getenv("MYSQL_DB_NAME"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		SessionTTL:         getenvDuration("SESSION_TTL", 12*time.Hour),
		Location:           loc,
		SecureCookie:       os.Getenv("SECURE_COOKIE") == "true",
		SlackToken:         os.Getenv("SLACK_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		SlackChannel:       os.Getenv("SLACK_CHANNEL"),
	}

	return cfg, nil
}

// Validate checks the settings the HTTP server cannot run without.
func (c Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.SlackToken != "" && c.SlackChannel == "" {
		return errors.New("SLACK_CHANNEL is required when SLACK_TOKEN is set")
	}

	return nil
}

func (c Config) MySQLDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.MySQLUser
	mc.Passwd = c.MySQLPassword
	mc.Net = c.MySQLProtocol
	mc.Addr = c.MySQLAddress
	mc.DBName = c.MySQLDBName
	mc.Collation = "utf8mb4_bin"
	mc.ParseTime = true

	return mc.FormatDSN()
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
