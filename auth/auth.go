package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"listingbot/models"
)

// BotSource resolves registered OAuth applications
type BotSource interface {
	GetAuthBot(ctx context.Context, clientID int64) (*models.AuthBot, error)
}

const oauthScope = "identify%20guilds.join%20guilds"

// Auth is a one-time website-ticket session bound to a registered OAuth
// application. Init must complete before URL is valid; URL is pure
// thereafter.
type Auth struct {
	clientID int64
	bots     BotSource
	botName  string

	resolvedClientID string
	redirectURI      string
	botToken         string
	clientSecret     string
}

// New creates a session bound to the given client id
func New(clientID int64, bots BotSource, botName string) *Auth {
	return &Auth{clientID: clientID, bots: bots, botName: botName}
}

// Init loads the application record and resolves the real client id from
// the bot token. Discord bot tokens carry the application id base64-encoded
// in their first dot-separated segment, without padding.
func (a *Auth) Init(ctx context.Context) error {
	bot, err := a.bots.GetAuthBot(ctx, a.clientID)
	if err != nil {
		return err
	}
	if bot == nil {
		return fmt.Errorf("auth bot %d is not registered", a.clientID)
	}

	a.botToken = bot.BotToken
	a.clientSecret = bot.ClientSecret
	a.redirectURI = bot.RedirectURI

	encoded := strings.SplitN(bot.BotToken, ".", 2)[0]
	if pad := len(encoded) % 4; pad != 0 {
		encoded += strings.Repeat("=", 4-pad)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("failed to decode client id from bot token: %w", err)
	}
	a.resolvedClientID = string(decoded)

	return nil
}

// URL returns the OAuth authorize URL for this session
func (a *Auth) URL() string {
	state := base64.StdEncoding.EncodeToString([]byte(a.resolvedClientID + "," + a.botName))
	return "https://discord.com/api/oauth2/authorize" +
		"?client_id=" + a.resolvedClientID +
		"&redirect_uri=" + a.redirectURI +
		"&response_type=code" +
		"&scope=" + oauthScope +
		"&state=" + state
}
