package api

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"listingbot/models"
)

// Store defines the database access the admin API needs
type Store interface {
	// GetConfig returns the raw value for a config key, "" when absent
	GetConfig(ctx context.Context, key string) (string, error)

	// LookupConfig returns the value for a config key and whether a row exists
	LookupConfig(ctx context.Context, key string) (string, bool, error)

	// ListAuthSessions returns every website session row
	ListAuthSessions(ctx context.Context) ([]*models.AuthSession, error)

	// ListAuthBots returns every registered OAuth application
	ListAuthBots(ctx context.Context) ([]*models.AuthBot, error)

	// ListAuthActions returns the full website action audit log
	ListAuthActions(ctx context.Context) ([]*models.AuthAction, error)

	// GetAICredits returns the singleton AI credit row, nil when absent
	GetAICredits(ctx context.Context) (*models.AICredits, error)

	// InsertAIConfig creates the singleton AI credit row
	InsertAIConfig(ctx context.Context, monthlyLimit, free, paid int64) error

	// AddPaidCredits increases the paid credit balance
	AddPaidCredits(ctx context.Context, credits int64) error

	// CountListings returns the per-inventory listing totals
	CountListings(ctx context.Context) (*models.ListingCounts, error)

	// ListTickets returns every open support ticket
	ListTickets(ctx context.Context) ([]*models.Ticket, error)

	// GetHosting returns the singleton hosting row, nil when absent
	GetHosting(ctx context.Context) (*models.Hosting, error)

	// ExtendHosting moves the subscription expiry and records the payment
	ExtendHosting(ctx context.Context, paidUntil string, paidBy int64, amount float64, method string) error
}

// Discord defines the chat-client lookups the admin API needs. Cached
// accessors return nil when the entity is not in the session state; only
// FetchUser goes to the Discord API.
type Discord interface {
	Guild(guildID string) *discordgo.Guild
	Member(guildID, userID string) *discordgo.Member
	Role(guildID, roleID string) *discordgo.Role
	Channel(channelID string) *discordgo.Channel
	User(userID string) *discordgo.User
	FetchUser(ctx context.Context, userID string) (*discordgo.User, error)
	BotUser() *discordgo.User
	OwnerID() string
	Domain(ctx context.Context) (string, error)
}

// TicketAuth is a one-time website-ticket session. Init must complete
// before URL is valid; URL is pure thereafter.
type TicketAuth interface {
	Init(ctx context.Context) error
	URL() string
}

// TicketAuthFactory constructs a ticket session bound to a client id
type TicketAuthFactory func(clientID int64) TicketAuth
