package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	OwnerID      string

	// Admin API configuration
	APIKey    string
	PortsFile string

	// Database configuration
	DatabasePath string

	// Filesystem
	TemplatesDir string

	// Identity: the per-deployment bot name, used for ports.json keys,
	// transcript file prefixes and OAuth state
	BotName string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, reading a .env file first
// when one is present in the working directory.
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		OwnerID:      os.Getenv("OWNER_ID"),

		// Admin API
		APIKey:    os.Getenv("API_KEY"),
		PortsFile: os.Getenv("PORTS_FILE"),

		// Database
		DatabasePath: os.Getenv("DATABASE_PATH"),

		// Filesystem
		TemplatesDir: os.Getenv("TEMPLATES_DIR"),

		// Identity
		BotName: os.Getenv("BOT_NAME"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Defaults
	if config.PortsFile == "" {
		config.PortsFile = filepath.Join("..", "parent_api", "ports.json")
	}
	if config.DatabasePath == "" {
		config.DatabasePath = filepath.Join("data", "listings.db")
	}
	if config.TemplatesDir == "" {
		config.TemplatesDir = "templates"
	}
	if config.BotName == "" {
		// The process is launched with its working directory set to the
		// bot's root, so the directory name identifies the deployment.
		if wd, err := os.Getwd(); err == nil {
			config.BotName = filepath.Base(wd)
		}
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
	}

	return config, nil
}

// OwnerIDInt returns the configured owner id as an int64, or 0 when unset
// or malformed.
func (c *Config) OwnerIDInt() int64 {
	id, err := strconv.ParseInt(c.OwnerID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
