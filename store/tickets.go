package store

import (
	"context"
	"database/sql"
	"fmt"

	"listingbot/models"
)

// ListTickets returns every open support ticket
func (s *Store) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT opened_by, channel_id, initial_message_id, role_id FROM tickets`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		var messageID, roleID sql.NullInt64
		if err := rows.Scan(&ticket.OpenedBy, &ticket.ChannelID, &messageID, &roleID); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		ticket.InitialMessageID = messageID.Int64
		ticket.RoleID = roleID.Int64
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}
	return tickets, nil
}
