package api

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"listingbot/models"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetConfig(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) LookupConfig(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) ListAuthSessions(ctx context.Context) ([]*models.AuthSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuthSession), args.Error(1)
}

func (m *MockStore) ListAuthBots(ctx context.Context) ([]*models.AuthBot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuthBot), args.Error(1)
}

func (m *MockStore) ListAuthActions(ctx context.Context) ([]*models.AuthAction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuthAction), args.Error(1)
}

func (m *MockStore) GetAICredits(ctx context.Context) (*models.AICredits, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AICredits), args.Error(1)
}

func (m *MockStore) InsertAIConfig(ctx context.Context, monthlyLimit, free, paid int64) error {
	args := m.Called(ctx, monthlyLimit, free, paid)
	return args.Error(0)
}

func (m *MockStore) AddPaidCredits(ctx context.Context, credits int64) error {
	args := m.Called(ctx, credits)
	return args.Error(0)
}

func (m *MockStore) CountListings(ctx context.Context) (*models.ListingCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingCounts), args.Error(1)
}

func (m *MockStore) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockStore) GetHosting(ctx context.Context) (*models.Hosting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hosting), args.Error(1)
}

func (m *MockStore) ExtendHosting(ctx context.Context, paidUntil string, paidBy int64, amount float64, method string) error {
	args := m.Called(ctx, paidUntil, paidBy, amount, method)
	return args.Error(0)
}

// MockDiscord is a mock implementation of Discord
type MockDiscord struct {
	mock.Mock
}

func (m *MockDiscord) Guild(guildID string) *discordgo.Guild {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*discordgo.Guild)
}

func (m *MockDiscord) Member(guildID, userID string) *discordgo.Member {
	args := m.Called(guildID, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*discordgo.Member)
}

func (m *MockDiscord) Role(guildID, roleID string) *discordgo.Role {
	args := m.Called(guildID, roleID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*discordgo.Role)
}

func (m *MockDiscord) Channel(channelID string) *discordgo.Channel {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*discordgo.Channel)
}

func (m *MockDiscord) User(userID string) *discordgo.User {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*discordgo.User)
}

func (m *MockDiscord) FetchUser(ctx context.Context, userID string) (*discordgo.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.User), args.Error(1)
}

func (m *MockDiscord) BotUser() *discordgo.User {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*discordgo.User)
}

func (m *MockDiscord) OwnerID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDiscord) Domain(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockTicketAuth is a mock implementation of TicketAuth
type MockTicketAuth struct {
	mock.Mock
}

func (m *MockTicketAuth) Init(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTicketAuth) URL() string {
	args := m.Called()
	return args.String(0)
}
