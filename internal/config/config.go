package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds market-data refresh configuration.
type MarketConfig struct {
	// PolygonAPIKey optionally bootstraps the stored API key on startup.
	// The key can also be set at runtime through the settings endpoint.
	PolygonAPIKey string

	// FernetKey encrypts the stored API key at rest. Base64, 32 bytes.
	FernetKey string

	// CooldownHours is the minimum spacing between catalog refreshes.
	CooldownHours float64

	// RefreshSchedule is the cron expression for the automatic daily
	// refresh job. Empty disables the job.
	RefreshSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cooldown, err := strconv.ParseFloat(getEnv("REFRESH_COOLDOWN_HOURS", "24"), 64)
	if err != nil || cooldown <= 0 {
		return nil, fmt.Errorf("invalid REFRESH_COOLDOWN_HOURS: %q", os.Getenv("REFRESH_COOLDOWN_HOURS"))
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/dividend_dashboard.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			PolygonAPIKey:   os.Getenv("POLYGON_API_KEY"),
			FernetKey:       os.Getenv("FERNET_KEY"),
			CooldownHours:   cooldown,
			RefreshSchedule: getEnv("REFRESH_SCHEDULE", "0 30 6 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
