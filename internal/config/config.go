package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Logging configuration
	LogLevel string

	// AWS configuration
	AWSRegion string

	// Billing store table names
	ServicesTableName     string
	PanelServersTableName string
	ProductsTableName     string
	CallLogsTableName     string

	// Hook authentication: shared secret used to verify the billing
	// system's JWT on every hook endpoint
	HookTokenSecret string

	// Panel API client timeouts
	PanelConnectTimeout time.Duration
	PanelRequestTimeout time.Duration

	// Optional YAML game catalog with per-product defaults
	GameCatalogPath string

	// Call log queue buffer size
	CallLogBuffer int
}

// New creates a new Config instance by loading environment variables
// from .env file (if present) and OS environment.
// OS environment variables take precedence over .env file values.
// Panics if required configuration values are missing or invalid.
func New() *Config {
	// Load .env from the directory the binary is run from
	// (silently ignore if not found)
	envPath := filepath.Join(".", ".env")
	_ = godotenv.Load(envPath)

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "3002"),

		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),

		AWSRegion: getEnvOrDefault("AWS_REGION", "us-east-1"),

		ServicesTableName:     getEnvOrDefault("SERVICES_TABLE_NAME", "BillingServices"),
		PanelServersTableName: getEnvOrDefault("PANEL_SERVERS_TABLE_NAME", "PanelServers"),
		ProductsTableName:     getEnvOrDefault("PRODUCTS_TABLE_NAME", "BillingProducts"),
		CallLogsTableName:     getEnvOrDefault("CALL_LOGS_TABLE_NAME", "ModuleCallLogs"),

		HookTokenSecret: os.Getenv("HOOK_TOKEN_SECRET"),

		PanelConnectTimeout: getDurationOrDefault("PANEL_CONNECT_TIMEOUT_SECONDS", 10),
		PanelRequestTimeout: getDurationOrDefault("PANEL_REQUEST_TIMEOUT_SECONDS", 30),

		GameCatalogPath: os.Getenv("GAME_CATALOG_FILE"),

		CallLogBuffer: getIntOrDefault("CALL_LOG_BUFFER", 256),
	}

	cfg.validate()

	return cfg
}

// validate checks that all required configuration values are present and valid
func (c *Config) validate() {
	var missing []string

	if c.HookTokenSecret == "" {
		missing = append(missing, "HOOK_TOKEN_SECRET")
	}

	if len(missing) > 0 {
		panic(fmt.Sprintf("Missing required configuration values: %v", missing))
	}

	// The hook secret signs HS256 tokens; a short secret is trivially brute-forced
	if len(c.HookTokenSecret) < 32 {
		panic(fmt.Sprintf("HOOK_TOKEN_SECRET must be at least 32 characters (got %d)", len(c.HookTokenSecret)))
	}

	if c.PanelConnectTimeout <= 0 || c.PanelRequestTimeout <= 0 {
		panic("Panel timeouts must be positive")
	}
	if c.PanelConnectTimeout > c.PanelRequestTimeout {
		panic("PANEL_CONNECT_TIMEOUT_SECONDS cannot exceed PANEL_REQUEST_TIMEOUT_SECONDS")
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntOrDefault returns an integer environment variable or a default value
func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// getDurationOrDefault returns a duration (in whole seconds) from the
// environment or a default value
func getDurationOrDefault(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}
