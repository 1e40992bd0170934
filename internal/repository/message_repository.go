package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/code-redemption/internal/model"
)

// listLimit caps message listings; the support log is append-only and
// unbounded, so readers only ever see the newest slice.
const listLimit = 50

// MessageRepo encapsulates the append-only support message log.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo constructs a MessageRepo with the provided DB handle.
func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// Create appends one message.  Defaults for anonymous senders are
// applied by the handler; the repository writes what it is given.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	const q = `INSERT INTO messages (user_id, username, message, role) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.UserID, m.Username, m.Message, m.Role)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	m.Status = model.MessageUnread
	return nil
}

// List returns messages newest first, capped at 50 rows, optionally
// filtered to one user.
func (r *MessageRepo) List(ctx context.Context, userID string) ([]*model.Message, error) {
	q := `SELECT id, COALESCE(user_id, ''), COALESCE(username, ''), message, role, replied_to, status, created_at
	      FROM messages`
	args := make([]any, 0, 1)
	if userID != "" {
		q += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	q += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, listLimit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Message, 0)
	for rows.Next() {
		m := new(model.Message)
		var repliedTo sql.NullInt64
		if err := rows.Scan(&m.ID, &m.UserID, &m.Username, &m.Message, &m.Role, &repliedTo, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		if repliedTo.Valid {
			v := uint64(repliedTo.Int64)
			m.RepliedTo = &v
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount returns the number of unread user-authored messages.
// Admin-authored messages never contribute to the unread badge.
func (r *MessageRepo) UnreadCount(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM messages WHERE status = 'unread' AND role = 'user'`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// MarkRead flips one message to read.  The flip is idempotent: marking
// an already-read or nonexistent message succeeds and changes nothing.
func (r *MessageRepo) MarkRead(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET status = 'read' WHERE id = ?`, id)
	return err
}
