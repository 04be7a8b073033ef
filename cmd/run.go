package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"listingbot/api"
	"listingbot/auth"
	"listingbot/config"
	"listingbot/database"
	"listingbot/discord"
	"listingbot/store"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting listing bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Bring the schema up to date
	if err := database.Migrate(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize the store
	st := store.New(db)

	// Initialize Discord client
	log.Info("Initializing Discord client...")
	discordClient, err := discord.New(discord.Config{
		Token:   cfg.DiscordToken,
		OwnerID: cfg.OwnerID,
	}, st)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize Discord client: %w", err)
	}
	log.Info("Discord client initialized successfully")

	// Initialize admin API server
	server := api.NewServer(cfg, st, discordClient, func(clientID int64) api.TicketAuth {
		return auth.New(clientID, st, cfg.BotName)
	})

	port := api.AllocatePort(cfg.PortsFile, cfg.BotName)
	server.Start(port)

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode on port %d...", cfg.Environment, port)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down admin API: %v", err)
	}

	if err := discordClient.Close(); err != nil {
		log.Errorf("Error closing Discord client: %v", err)
	}

	log.Info("Closing database connection...")
	if err := db.Close(); err != nil {
		log.Errorf("Error closing database: %v", err)
	}

	log.Info("Shutdown completed")
	return nil
}
