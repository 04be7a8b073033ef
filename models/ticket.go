package models

// Ticket is one open support ticket
type Ticket struct {
	OpenedBy         int64
	ChannelID        int64
	InitialMessageID int64
	RoleID           int64
}
