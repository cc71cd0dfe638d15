package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"petvault/internal/domain/timeline"
)

type TimelineRepo struct {
	db *sql.DB
}

func NewTimelineRepo(db *sql.DB) *TimelineRepo {
	return &TimelineRepo{db: db}
}

func (r *TimelineRepo) Create(ctx context.Context, e timeline.Entry) error {
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO timeline_entries (
			id, pet_id, category, title, description, date, metadata,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.PetID,
		string(e.Category),
		e.Title,
		e.Description,
		e.Date,
		meta,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *TimelineRepo) GetByID(ctx context.Context, id string) (timeline.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return timeline.Entry{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, category, title, description, date, metadata,
		       created_at, updated_at
		FROM timeline_entries
		WHERE id = $1
	`, id)

	return scanEntry(row)
}

func (r *TimelineRepo) ListByPet(ctx context.Context, petID string, filter timeline.ListFilter) ([]timeline.Entry, error) {
	query := `
		SELECT id, pet_id, category, title, description, date, metadata,
		       created_at, updated_at
		FROM timeline_entries
		WHERE pet_id = $1
	`
	args := []any{petID}

	if filter.Category != "" {
		query += ` AND category = $2`
		args = append(args, string(filter.Category))
	}

	query += ` ORDER BY date DESC, created_at DESC`

	if filter.Limit > 0 {
		// El placeholder depende de si hay filtro de categoría.
		if filter.Category != "" {
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

	out := make([]timeline.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func (r *TimelineRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timeline_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEntry(row rowScanner) (timeline.Entry, error) {
	var e timeline.Entry
	var category string
	var meta []byte

	if err := row.Scan(
		&e.ID,
		&e.PetID,
		&category,
		&e.Title,
		&e.Description,
		&e.Date,
		&meta,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return timeline.Entry{}, ErrNotFound
		}
		return timeline.Entry{}, err
	}

	e.Category = timeline.Category(category)
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &e.Metadata); err != nil {
			return timeline.Entry{}, err
		}
	}

	return e, nil
}
