package postgres

import (
	"context"
	"database/sql"
	"time"

	"petvault/internal/domain/assistant"
)

type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) Append(ctx context.Context, msgs []assistant.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chat_messages (id, user_id, role, content, created_at)
			VALUES ($1,$2,$3,$4,$5)
		`,
			m.ID,
			m.UserID,
			string(m.Role),
			m.Content,
			m.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ChatRepo) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chat_messages
		WHERE user_id = $1 AND created_at >= $2
	`, userID, since).Scan(&count)
	return count, err
}

func (r *ChatRepo) Recent(ctx context.Context, userID string, limit int) ([]assistant.ChatMessage, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}

	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assistant.ChatMessage, 0)
	for rows.Next() {
		var m assistant.ChatMessage
		var role string
		if err := rows.Scan(&m.ID, &m.UserID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = assistant.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}
