package store

import (
	"listingbot/database"
)

// Store provides typed access to the bot's SQLite database. It is the only
// component that issues SQL; handlers and the Discord layer consume its
// methods through narrow interfaces.
type Store struct {
	db *database.DB
}

// New creates a store over an open database connection
func New(db *database.DB) *Store {
	return &Store{db: db}
}
