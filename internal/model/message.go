package model

import "time"

// Message status values.  Messages authored by users start unread and
// are flipped to read by an admin; the flip is idempotent.
const (
	MessageUnread = "unread"
	MessageRead   = "read"
)

// Message is one entry in the append-only support log.  There is no
// deletion path.  RepliedTo is a self-reference kept for the front end;
// none of the current flows populate it.
type Message struct {
	ID        uint64    `json:"id"`         // messages.id
	UserID    string    `json:"user_id"`    // messages.user_id
	Username  string    `json:"username"`   // messages.username
	Message   string    `json:"message"`    // messages.message
	Role      string    `json:"role"`       // messages.role ("user" or "admin")
	RepliedTo *uint64   `json:"replied_to"` // messages.replied_to (nullable)
	Status    string    `json:"status"`     // messages.status
	CreatedAt time.Time `json:"created_at"` // messages.created_at
}
