package postgres

import (
	"context"
	"database/sql"

	"petvault/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, plan_type, subscription_status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO NOTHING
	`,
		p.UserID,
		string(p.PlanType),
		p.SubscriptionStatus,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProfilesRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	var p profiles.Profile
	var plan string

	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, plan_type, subscription_status, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(
		&p.UserID,
		&plan,
		&p.SubscriptionStatus,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return profiles.Profile{}, ErrNotFound
		}
		return profiles.Profile{}, err
	}

	p.PlanType = profiles.PlanType(plan)
	return p, nil
}

func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET plan_type = $2, subscription_status = $3, updated_at = $4
		WHERE user_id = $1
	`,
		p.UserID,
		string(p.PlanType),
		p.SubscriptionStatus,
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
