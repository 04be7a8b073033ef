package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// GetConfig returns the raw value for a config key, or "" when the key is
// not present.
func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	value, _, err := s.LookupConfig(ctx, key)
	return value, err
}

// LookupConfig returns the raw value for a config key and whether a row
// exists for it at all.
func (s *Store) LookupConfig(ctx context.Context, key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM config WHERE key = ? LIMIT 1`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get config %q: %w", key, err)
	}
	return value.String, true, nil
}

// GetConfigInt64 returns the value for a config key parsed as an int64, or
// 0 when the key is absent or not numeric.
func (s *Store) GetConfigInt64(ctx context.Context, key string) (int64, error) {
	value, err := s.GetConfig(ctx, key)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// SetConfig replaces the value for a config key, recording the declared
// value type alongside it.
func (s *Store) SetConfig(ctx context.Context, key, value, dataType string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin config update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear config %q: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO config (key, value, data_type) VALUES (?, ?, ?)`,
		key, value, dataType,
	); err != nil {
		return fmt.Errorf("failed to set config %q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit config %q: %w", key, err)
	}
	return nil
}
