package profiles

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, p Profile) error
}
