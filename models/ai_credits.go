package models

// AICredits is the singleton AI credit pool. LastReset holds the raw
// timestamp text from the database; empty when the column is NULL.
type AICredits struct {
	MonthlyLimit  int64
	RemainingFree int64
	RemainingPaid int64
	LastReset     string
}

// TotalRemaining returns the combined free and paid credit balance
func (c *AICredits) TotalRemaining() int64 {
	return c.RemainingFree + c.RemainingPaid
}
