package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the client configuration: where the backend, the bid hub and
// the identity provider live, and which JWT claim carries the roles list.
type Config struct {
	APIBaseURL    string
	HubURL        string
	TokenURL      string
	ClientID      string
	ClientSecret  string
	Audience      string
	RolesClaim    string
	AdminRole     string
	AuditPageSize int
}

// Load reads .env if present, then the environment, falling back to defaults
// that match a local backend.
func Load() *Config {
	// .env is optional, plain environment variables win
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:5188/api"),
		HubURL:        getEnv("BID_HUB_URL", "ws://localhost:5188/hubs/bid"),
		TokenURL:      getEnv("AUTH_TOKEN_URL", "http://localhost:5188/oauth/token"),
		ClientID:      getEnv("AUTH_CLIENT_ID", ""),
		ClientSecret:  getEnv("AUTH_CLIENT_SECRET", ""),
		Audience:      getEnv("AUTH_AUDIENCE", "https://online-auction-app.com/api"),
		RolesClaim:    getEnv("AUTH_ROLES_CLAIM", "https://online-auction-app.com/roles"),
		AdminRole:     getEnv("AUTH_ADMIN_ROLE", "admin"),
		AuditPageSize: getEnvInt("AUDIT_PAGE_SIZE", 20),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
