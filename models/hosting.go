package models

// Hosting is the singleton hosting subscription record. Timestamp fields
// hold the raw text from the database; empty when NULL.
type Hosting struct {
	PaidUntil         string
	PaidBy            int64
	LastPayment       string
	LastPaymentAmount float64
	LastPaymentMethod string
}
