package profiles

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byUser map[string]Profile

	getErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byUser: map[string]Profile{}}
}

func (r *testRepo) Create(ctx context.Context, p Profile) error {
	r.byUser[p.UserID] = p
	return nil
}

func (r *testRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	if r.getErr != nil {
		return Profile{}, r.getErr
	}
	p, ok := r.byUser[userID]
	if !ok {
		return Profile{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) Update(ctx context.Context, p Profile) error {
	if _, ok := r.byUser[p.UserID]; !ok {
		return errRepoNotFound
	}
	r.byUser[p.UserID] = p
	return nil
}

func TestService_GetOrCreate_LazyBasic(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.GetOrCreate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if p.PlanType != PlanBasic {
		t.Fatalf("expected basic plan, got %s", p.PlanType)
	}
	if p.SubscriptionStatus != "inactive" {
		t.Fatalf("expected inactive status, got %s", p.SubscriptionStatus)
	}
	if p.CreatedAt != now {
		t.Fatalf("expected CreatedAt to be now")
	}

	// Segunda llamada devuelve el mismo perfil, no crea otro.
	again, err := svc.GetOrCreate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate #2 error: %v", err)
	}
	if again != p {
		t.Fatalf("expected same profile on second call")
	}
}

func TestService_Upgrade_Idempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Upgrade(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Upgrade error: %v", err)
	}
	if p.PlanType != PlanPro || p.SubscriptionStatus != "active" {
		t.Fatalf("expected pro/active, got %s/%s", p.PlanType, p.SubscriptionStatus)
	}

	again, err := svc.Upgrade(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Upgrade #2 error: %v", err)
	}
	if again.UpdatedAt != p.UpdatedAt {
		t.Fatalf("idempotent upgrade must not touch UpdatedAt")
	}
}

func TestService_PlanOf_DegradesToBasic(t *testing.T) {
	repo := newTestRepo()
	repo.getErr = errors.New("store down")
	svc := NewService(repo)

	if plan := svc.PlanOf(context.Background(), "user-1"); plan != PlanBasic {
		t.Fatalf("expected basic on store error, got %s", plan)
	}
}

func TestPlanType_Limits(t *testing.T) {
	if PlanBasic.MaxPets() != 1 || PlanBasic.MaxDocuments() != 15 {
		t.Fatalf("basic limits wrong: %d pets, %d docs", PlanBasic.MaxPets(), PlanBasic.MaxDocuments())
	}
	if PlanPro.MaxPets() != 0 || PlanPro.MaxDocuments() != 0 {
		t.Fatalf("pro must be unlimited")
	}
}
