package store

import (
	"context"
	"fmt"

	"listingbot/models"
)

// CountListings returns the number of rows in each listing inventory
func (s *Store) CountListings(ctx context.Context) (*models.ListingCounts, error) {
	var counts models.ListingCounts

	for _, table := range []struct {
		name string
		dst  *int64
	}{
		{"accounts", &counts.Accounts},
		{"profiles", &counts.Profiles},
		{"alts", &counts.Alts},
	} {
		err := s.db.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table.name),
		).Scan(table.dst)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table.name, err)
		}
	}

	return &counts, nil
}
