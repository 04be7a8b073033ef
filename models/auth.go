package models

// AuthSession is one website session created by the OAuth flow
type AuthSession struct {
	UserID    int64
	IPAddress string
	BotID     int64
}

// AuthBot is a registered external OAuth application
type AuthBot struct {
	ClientID     int64
	ClientSecret string
	BotToken     string
	RedirectURI  string
}

// AuthAction is one audit-log entry of a website action
type AuthAction struct {
	ActionID   int64
	UserID     int64
	ActionType string
	Timestamp  string
	Details    string
	Resolved   bool
}
