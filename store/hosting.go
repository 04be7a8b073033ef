package store

import (
	"context"
	"database/sql"
	"fmt"

	"listingbot/models"
)

// GetHosting returns the singleton hosting subscription row, or nil when
// the table is empty.
func (s *Store) GetHosting(ctx context.Context) (*models.Hosting, error) {
	var hosting models.Hosting
	var paidUntil, lastPayment, method sql.NullString
	var paidBy sql.NullInt64
	var amount sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT paid_until, paid_by, last_payment, last_payment_amount, last_payment_method
		 FROM hosting LIMIT 1`,
	).Scan(&paidUntil, &paidBy, &lastPayment, &amount, &method)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hosting: %w", err)
	}

	hosting.PaidUntil = paidUntil.String
	hosting.PaidBy = paidBy.Int64
	hosting.LastPayment = lastPayment.String
	hosting.LastPaymentAmount = amount.Float64
	hosting.LastPaymentMethod = method.String
	return &hosting, nil
}

// ExtendHosting moves the subscription expiry and records the payment,
// creating the singleton row when it does not exist yet.
func (s *Store) ExtendHosting(ctx context.Context, paidUntil string, paidBy int64, amount float64, method string) error {
	existing, err := s.GetHosting(ctx)
	if err != nil {
		return err
	}

	var payer any
	if paidBy != 0 {
		payer = paidBy
	}

	if existing != nil {
		_, err = s.db.ExecContext(ctx,
			`UPDATE hosting
			 SET paid_until = ?,
			     paid_by = ?,
			     last_payment = CURRENT_TIMESTAMP,
			     last_payment_amount = ?,
			     last_payment_method = ?`,
			paidUntil, payer, amount, method,
		)
	} else {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO hosting
			 (paid_until, paid_by, last_payment, last_payment_amount, last_payment_method)
			 VALUES (?, ?, CURRENT_TIMESTAMP, ?, ?)`,
			paidUntil, payer, amount, method,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to extend hosting: %w", err)
	}
	return nil
}
