package postgres

import (
	"context"
	"database/sql"
	"strings"

	"petvault/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, user_id,
			name, breed, gender, age, weight,
			photo_url, microchip_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Breed,
		p.Gender,
		toNullInt(p.Age),
		toNullFloat(p.WeightKg),
		p.PhotoURL,
		p.MicrochipID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			breed = $3,
			gender = $4,
			age = $5,
			weight = $6,
			photo_url = $7,
			microchip_id = $8,
			updated_at = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Gender,
		toNullInt(p.Age),
		toNullFloat(p.WeightKg),
		p.PhotoURL,
		p.MicrochipID,
		p.UpdatedAt,
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

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			name, breed, gender, age, weight,
			photo_url, microchip_id,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			name, breed, gender, age, weight,
			photo_url, microchip_id,
			created_at, updated_at
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pets WHERE user_id = $1
	`, ownerUserID).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var age sql.NullInt64
	var weight sql.NullFloat64

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Breed,
		&p.Gender,
		&age,
		&weight,
		&p.PhotoURL,
		&p.MicrochipID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if weight.Valid {
		v := weight.Float64
		p.WeightKg = &v
	}

	return p, nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
