package postgres

import (
	"context"
	"database/sql"
	"strings"

	"petvault/internal/domain/reminders"
)

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (
			id, user_id, pet_id, title, date, type, status,
			recurring, recurring_interval,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rem.ID,
		rem.UserID,
		rem.PetID,
		rem.Title,
		rem.Date,
		rem.Type,
		string(rem.Status),
		rem.Recurring,
		nullString(string(rem.RecurringInterval)),
		rem.CreatedAt,
		rem.UpdatedAt,
	)
	return err
}

func (r *RemindersRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET
			title = $2,
			date = $3,
			type = $4,
			status = $5,
			recurring = $6,
			recurring_interval = $7,
			updated_at = $8
		WHERE id = $1
	`,
		rem.ID,
		rem.Title,
		rem.Date,
		rem.Type,
		string(rem.Status),
		rem.Recurring,
		nullString(string(rem.RecurringInterval)),
		rem.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reminders.Reminder{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, pet_id, title, date, type, status,
		       recurring, recurring_interval, created_at, updated_at
		FROM reminders
		WHERE id = $1
	`, id)

	return scanReminder(row)
}

func (r *RemindersRepo) ListByPet(ctx context.Context, petID string, filter reminders.ListFilter) ([]reminders.Reminder, error) {
	query := `
		SELECT id, user_id, pet_id, title, date, type, status,
		       recurring, recurring_interval, created_at, updated_at
		FROM reminders
		WHERE pet_id = $1
	`
	args := []any{petID}

	if filter.Status != "" {
		query += ` AND status = $2`
		args = append(args, string(filter.Status))
	}

	query += ` ORDER BY date ASC`

	if filter.Limit > 0 {
		if filter.Status != "" {
			query += ` LIMIT $3`
		} else {
			query += ` LIMIT $2`
		}
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}

	return out, rows.Err()
}

func scanReminder(row rowScanner) (reminders.Reminder, error) {
	var rem reminders.Reminder
	var status string
	var interval sql.NullString

	if err := row.Scan(
		&rem.ID,
		&rem.UserID,
		&rem.PetID,
		&rem.Title,
		&rem.Date,
		&rem.Type,
		&status,
		&rem.Recurring,
		&interval,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return reminders.Reminder{}, ErrNotFound
		}
		return reminders.Reminder{}, err
	}

	rem.Status = reminders.Status(status)
	if interval.Valid {
		rem.RecurringInterval = reminders.RecurringInterval(interval.String)
	}

	return rem, nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
