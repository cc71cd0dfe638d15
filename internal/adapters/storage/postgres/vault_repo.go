package postgres

import (
	"context"
	"database/sql"
	"strings"

	"petvault/internal/domain/vault"
)

type VaultRepo struct {
	db *sql.DB
}

func NewVaultRepo(db *sql.DB) *VaultRepo {
	return &VaultRepo{db: db}
}

func (r *VaultRepo) Create(ctx context.Context, d vault.Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO files (
			id, entry_id, pet_id, file_url, file_type, file_name, file_size,
			uploaded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		d.ID,
		d.EntryID,
		d.PetID,
		d.FileURL,
		d.FileType,
		d.FileName,
		d.FileSize,
		d.UploadedAt,
	)
	return err
}

func (r *VaultRepo) GetByID(ctx context.Context, id string) (vault.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vault.Document{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, entry_id, pet_id, file_url, file_type, file_name, file_size,
		       uploaded_at
		FROM files
		WHERE id = $1
	`, id)

	return scanDocument(row)
}

func (r *VaultRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VaultRepo) ListByPet(ctx context.Context, petID string, limit int) ([]vault.Document, error) {
	query := `
		SELECT id, entry_id, pet_id, file_url, file_type, file_name, file_size,
		       uploaded_at
		FROM files
		WHERE pet_id = $1
		ORDER BY uploaded_at DESC
	`
	args := []any{petID}

	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

func (r *VaultRepo) ListByEntry(ctx context.Context, entryID string) ([]vault.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entry_id, pet_id, file_url, file_type, file_name, file_size,
		       uploaded_at
		FROM files
		WHERE entry_id = $1
		ORDER BY uploaded_at DESC
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

func (r *VaultRepo) CountByPets(ctx context.Context, petIDs []string) (int, error) {
	if len(petIDs) == 0 {
		return 0, nil
	}

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM files WHERE pet_id = ANY($1)
	`, petIDs).Scan(&count)
	return count, err
}

func collectDocuments(rows *sql.Rows) ([]vault.Document, error) {
	out := make([]vault.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDocument(row rowScanner) (vault.Document, error) {
	var d vault.Document
	if err := row.Scan(
		&d.ID,
		&d.EntryID,
		&d.PetID,
		&d.FileURL,
		&d.FileType,
		&d.FileName,
		&d.FileSize,
		&d.UploadedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return vault.Document{}, ErrNotFound
		}
		return vault.Document{}, err
	}
	return d, nil
}
