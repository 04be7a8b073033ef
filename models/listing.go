package models

// ListingCounts holds the per-inventory listing totals
type ListingCounts struct {
	Accounts int64
	Profiles int64
	Alts     int64
}

// Total returns the combined number of listings across all inventories
func (c *ListingCounts) Total() int64 {
	return c.Accounts + c.Profiles + c.Alts
}
