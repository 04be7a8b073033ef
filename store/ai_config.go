package store

import (
	"context"
	"database/sql"
	"fmt"

	"listingbot/models"
)

// GetAICredits returns the singleton AI credit row, or nil when the table
// is empty.
func (s *Store) GetAICredits(ctx context.Context) (*models.AICredits, error) {
	var credits models.AICredits
	var lastReset sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT monthly_limit, remaining_credits_free, remaining_credits_paid, last_reset
		 FROM ai_config LIMIT 1`,
	).Scan(&credits.MonthlyLimit, &credits.RemainingFree, &credits.RemainingPaid, &lastReset)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ai credits: %w", err)
	}

	credits.LastReset = lastReset.String
	return &credits, nil
}

// InsertAIConfig creates the singleton AI credit row with the default
// monthly allowance and the given paid balance.
func (s *Store) InsertAIConfig(ctx context.Context, monthlyLimit, free, paid int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ai_config
		 (monthly_limit, remaining_credits_free, remaining_credits_paid, last_reset)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		monthlyLimit, free, paid,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ai config: %w", err)
	}
	return nil
}

// AddPaidCredits increases the paid credit balance
func (s *Store) AddPaidCredits(ctx context.Context, credits int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE ai_config SET remaining_credits_paid = remaining_credits_paid + ?`,
		credits,
	)
	if err != nil {
		return fmt.Errorf("failed to add paid credits: %w", err)
	}
	return nil
}
