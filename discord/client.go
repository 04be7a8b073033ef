package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// ConfigSource provides the typed key/value config the client needs for
// lookups such as the website domain.
type ConfigSource interface {
	GetConfig(ctx context.Context, key string) (string, error)
}

// Config holds Discord client configuration
type Config struct {
	Token   string
	OwnerID string
}

// Client wraps a discordgo session and exposes the cached lookups and
// async fetches the admin API consumes. All cached accessors read the
// session state and return nil when the entity is not cached.
type Client struct {
	config  Config
	session *discordgo.Session
	configs ConfigSource
}

// New creates a Discord client and opens the gateway connection
func New(config Config, configs ConfigSource) (*Client, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll
	dg.StateEnabled = true
	dg.State.TrackMembers = true
	dg.State.TrackRoles = true
	dg.State.TrackChannels = true
	dg.State.TrackPresences = true

	client := &Client{
		config:  config,
		session: dg,
		configs: configs,
	}

	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Infof("Discord session ready as %s", r.User.Username)
	})

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	return client, nil
}

// NewFromSession wraps an existing session; used by tests
func NewFromSession(session *discordgo.Session, config Config, configs ConfigSource) *Client {
	return &Client{config: config, session: session, configs: configs}
}

// Close closes the gateway connection
func (c *Client) Close() error {
	return c.session.Close()
}

// Guild returns the cached guild, or nil when it is not visible
func (c *Client) Guild(guildID string) *discordgo.Guild {
	guild, err := c.session.State.Guild(guildID)
	if err != nil {
		return nil
	}
	return guild
}

// Member returns the cached guild member, or nil
func (c *Client) Member(guildID, userID string) *discordgo.Member {
	member, err := c.session.State.Member(guildID, userID)
	if err != nil {
		return nil
	}
	return member
}

// Role returns the cached role, or nil
func (c *Client) Role(guildID, roleID string) *discordgo.Role {
	role, err := c.session.State.Role(guildID, roleID)
	if err != nil {
		return nil
	}
	return role
}

// Channel returns the cached channel, or nil
func (c *Client) Channel(channelID string) *discordgo.Channel {
	channel, err := c.session.State.Channel(channelID)
	if err != nil {
		return nil
	}
	return channel
}

// User returns a user from the member caches of the guilds the bot can
// see, or nil when the user is not cached anywhere.
func (c *Client) User(userID string) *discordgo.User {
	for _, guild := range c.session.State.Guilds {
		member, err := c.session.State.Member(guild.ID, userID)
		if err == nil && member.User != nil {
			return member.User
		}
	}
	return nil
}

// FetchUser retrieves a user from the Discord API, bypassing the cache
func (c *Client) FetchUser(ctx context.Context, userID string) (*discordgo.User, error) {
	user, err := c.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return user, nil
}

// BotUser returns the bot's own user
func (c *Client) BotUser() *discordgo.User {
	return c.session.State.User
}

// OwnerID returns the configured owner's user id
func (c *Client) OwnerID() string {
	return c.config.OwnerID
}

// Domain returns the website domain this deployment is registered under
func (c *Client) Domain(ctx context.Context) (string, error) {
	domain, err := c.configs.GetConfig(ctx, "domain")
	if err != nil {
		return "", fmt.Errorf("failed to resolve domain: %w", err)
	}
	return domain, nil
}
