package store

import (
	"context"
	"database/sql"
	"fmt"

	"listingbot/models"
)

// ListAuthSessions returns every website session row
func (s *Store) ListAuthSessions(ctx context.Context) ([]*models.AuthSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, ip_address, bot_id FROM auth`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.AuthSession
	for rows.Next() {
		var session models.AuthSession
		var ip sql.NullString
		var botID sql.NullInt64
		if err := rows.Scan(&session.UserID, &ip, &botID); err != nil {
			return nil, fmt.Errorf("failed to scan auth session: %w", err)
		}
		session.IPAddress = ip.String
		session.BotID = botID.Int64
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auth sessions: %w", err)
	}
	return sessions, nil
}

// ListAuthBots returns every registered OAuth application
func (s *Store) ListAuthBots(ctx context.Context) ([]*models.AuthBot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT client_id, client_secret, bot_token, redirect_uri FROM auth_bots`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth bots: %w", err)
	}
	defer rows.Close()

	var bots []*models.AuthBot
	for rows.Next() {
		var bot models.AuthBot
		var secret, token, redirect sql.NullString
		if err := rows.Scan(&bot.ClientID, &secret, &token, &redirect); err != nil {
			return nil, fmt.Errorf("failed to scan auth bot: %w", err)
		}
		bot.ClientSecret = secret.String
		bot.BotToken = token.String
		bot.RedirectURI = redirect.String
		bots = append(bots, &bot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auth bots: %w", err)
	}
	return bots, nil
}

// GetAuthBot retrieves a registered OAuth application by client id.
// Returns nil when no such bot exists.
func (s *Store) GetAuthBot(ctx context.Context, clientID int64) (*models.AuthBot, error) {
	var bot models.AuthBot
	var secret, token, redirect sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT client_id, client_secret, bot_token, redirect_uri FROM auth_bots WHERE client_id = ?`,
		clientID,
	).Scan(&bot.ClientID, &secret, &token, &redirect)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth bot %d: %w", clientID, err)
	}

	bot.ClientSecret = secret.String
	bot.BotToken = token.String
	bot.RedirectURI = redirect.String
	return &bot, nil
}

// ListAuthActions returns the full website action audit log
func (s *Store) ListAuthActions(ctx context.Context) ([]*models.AuthAction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action_id, user_id, action_type, timestamp, details, resolved FROM auth_actions`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth actions: %w", err)
	}
	defer rows.Close()

	var actions []*models.AuthAction
	for rows.Next() {
		var action models.AuthAction
		var details sql.NullString
		if err := rows.Scan(
			&action.ActionID,
			&action.UserID,
			&action.ActionType,
			&action.Timestamp,
			&details,
			&action.Resolved,
		); err != nil {
			return nil, fmt.Errorf("failed to scan auth action: %w", err)
		}
		action.Details = details.String
		actions = append(actions, &action)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auth actions: %w", err)
	}
	return actions, nil
}
