package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"matchbook/database"
)

// Config holds all application configuration
type Config struct {
	// HTTP server configuration
	ListenAddr     string
	AllowedOrigins []string // Browser front-end origins for CORS

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Identity configuration
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string // Account name promoted to admin on registration

	// Game configuration
	StartingCoins       int64    // Bank granted to every new account
	DefaultDistribution int64    // Coins handed out per user when betting opens
	DefaultOdds         int64    // Payout multiplier when a bet doesn't specify one
	Roster              []string // Player names eligible for votes and props

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// defaultRoster mirrors the player list the browser client offers.
var defaultRoster = []string{"Aki", "Bruno", "Cass", "Dima", "Eryk"}

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// HTTP
		ListenAddr: getEnvWithDefault("LISTEN_ADDR", ":8080"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Identity
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      24 * time.Hour,
		AdminUsername: os.Getenv("ADMIN_USERNAME"),

		// Game settings with defaults
		StartingCoins:       100,
		DefaultDistribution: 10,
		DefaultOdds:         4,
		Roster:              defaultRoster,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if coins := os.Getenv("STARTING_COINS"); coins != "" {
		if parsed, err := strconv.ParseInt(coins, 10, 64); err == nil {
			config.StartingCoins = parsed
		}
	}
	if amount := os.Getenv("DEFAULT_DISTRIBUTION"); amount != "" {
		if parsed, err := strconv.ParseInt(amount, 10, 64); err == nil {
			config.DefaultDistribution = parsed
		}
	}
	if odds := os.Getenv("DEFAULT_ODDS"); odds != "" {
		if parsed, err := strconv.ParseInt(odds, 10, 64); err == nil {
			config.DefaultOdds = parsed
		}
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			config.TokenTTL = parsed
		}
	}

	// Parse the player roster
	if roster := os.Getenv("PLAYERS"); roster != "" {
		config.Roster = nil
		for _, name := range strings.Split(roster, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				config.Roster = append(config.Roster, name)
			}
		}
	}

	// Parse allowed CORS origins
	origins := getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			config.AllowedOrigins = append(config.AllowedOrigins, origin)
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:         "test",
		ListenAddr:          ":0",
		AllowedOrigins:      []string{"http://localhost:3000"},
		JWTSecret:           "test-secret",
		TokenTTL:            time.Hour,
		StartingCoins:       100,
		DefaultDistribution: 10,
		DefaultOdds:         4,
		Roster:              []string{"Aki", "Bruno", "Cass", "Dima", "Eryk"},
	}
}
