package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Telegram
	BotToken string
	BotName  string

	// Server
	Port string

	// Database
	DBPath string

	// Web session
	JWTSecret    string
	CookieName   string
	CookieDomain string
	TokenTTL     time.Duration

	// Dev enables permissive CORS.
	Dev bool
}

var appConfig *Config

// Load loads configuration from environment variables. Outside of production,
// .env.dev is loaded first so local overrides win over the shared .env file.
func Load() (*Config, error) {
	dev := os.Getenv("EXPENIS_ENV") != "production"
	if dev {
		if err := godotenv.Load(".env.dev"); err != nil {
			log.Println("Warning: .env.dev file not found")
		}
	}
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		BotToken: getEnv("token", ""),
		BotName:  getEnv("bot_name", "expenis_bot"),

		Port:   getEnv("port", "8080"),
		DBPath: getEnv("db_path", "expenis.db"),

		JWTSecret:    getEnv("secret", "fallback-secret-key-for-dev-only"),
		CookieName:   getEnv("cookie_name", "access_token"),
		CookieDomain: getEnv("cookie_domain", "localhost"),

		Dev: dev,
	}

	ttlStr := getEnv("expiration_time_seconds", "86400")
	ttlSeconds, err := strconv.Atoi(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid expiration_time_seconds value '%s', falling back to 86400\n", ttlStr)
		ttlSeconds = 86400
	}
	config.TokenTTL = time.Duration(ttlSeconds) * time.Second

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
