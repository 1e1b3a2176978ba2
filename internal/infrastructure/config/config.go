package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config holds all runtime configuration for the service
type Config struct {
	// Environment type: LOCAL or SERVER
	EnvType string

	// Database
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // "auto" (default) or "drop" (drop and recreate tables)

	// Server
	ServerPort string

	// JWT Authentication
	JWTSecretKey string

	// Setup secret gating the one-time master bootstrap route; optional,
	// the gated route fails closed when it is unset
	SetupSecret string

	// Admin
	MasterAdminUsername  string
	DefaultAdminPassword string
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	// Get environment type (default to LOCAL if not set)
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	if strings.ToUpper(envType) == "LOCAL" {
		prefix = "LOCAL_"
	} else if strings.ToUpper(envType) == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	return &Config{
		EnvType: strings.ToUpper(envType),

		// Database config - connection parameters are required so a
		// misconfigured deployment fails at startup, not mid-request
		DBHost:          getEnvRequired(prefix + "DB_HOST"),
		DBUser:          getEnvRequired(prefix + "DB_USER"),
		DBPassword:      getEnvRequired(prefix + "DB_PASSWORD"),
		DBName:          getEnvRequired(prefix + "DB_NAME"),
		DBPort:          getEnvRequired(prefix + "DB_PORT"),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", "auto"),

		// Server config
		ServerPort: getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "5000")),

		// JWT config - the signing secret has no safe default
		JWTSecretKey: getEnvRequired("JWT_SECRET_KEY"),

		// Setup secret for /admin/init-master/custom
		SetupSecret: getEnv("SETUP_SECRET", ""),

		// Admin bootstrap config
		MasterAdminUsername:  getEnv("MASTER_ADMIN_USERNAME", "master"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true&multiStatements=true"
}

// IsProduction reports whether the service runs in the hosted environment.
// A failed database connection is surfaced to callers there instead of
// terminating the process, so requests can retry once the store recovers.
func (c *Config) IsProduction() bool {
	return c.EnvType == "SERVER"
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function requiring the environment variable to be present
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
