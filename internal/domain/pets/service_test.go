package pets

import (
	"context"
	"errors"
	"sort"
	"testing"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	items, _ := r.ListByOwner(ctx, ownerUserID)
	return len(items), nil
}

func TestService_Create_PlanLimit(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	// Límite basic: 1 mascota.
	if _, err := svc.Create(ctx, "owner-1", 1, CreateInput{Name: "Milo"}); err != nil {
		t.Fatalf("first pet error: %v", err)
	}
	if _, err := svc.Create(ctx, "owner-1", 1, CreateInput{Name: "Luna"}); !errors.Is(err, ErrPlanLimit) {
		t.Fatalf("expected ErrPlanLimit, got %v", err)
	}

	// maxPets 0 = sin límite (pro).
	if _, err := svc.Create(ctx, "owner-1", 0, CreateInput{Name: "Luna"}); err != nil {
		t.Fatalf("unlimited pet error: %v", err)
	}

	// El límite es por dueño, no global.
	if _, err := svc.Create(ctx, "owner-2", 1, CreateInput{Name: "Rocky"}); err != nil {
		t.Fatalf("other owner pet error: %v", err)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	negAge := -1
	zeroWeight := 0.0

	cases := []struct {
		name  string
		owner string
		in    CreateInput
	}{
		{"sin owner", "", CreateInput{Name: "Milo"}},
		{"sin nombre", "owner-1", CreateInput{Name: "  "}},
		{"edad negativa", "owner-1", CreateInput{Name: "Milo", Age: &negAge}},
		{"peso cero", "owner-1", CreateInput{Name: "Milo", WeightKg: &zeroWeight}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.owner, 0, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestService_Update_PartialPatch(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	weight := 12.5
	p, err := svc.Create(ctx, "owner-1", 0, CreateInput{Name: "Milo", Breed: "beagle", WeightKg: &weight})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newName := "Milo Jr."
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Name: &newName})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Name != "Milo Jr." {
		t.Fatalf("expected renamed pet, got %q", updated.Name)
	}
	// Los campos no enviados no se tocan.
	if updated.Breed != "beagle" || updated.WeightKg == nil || *updated.WeightKg != 12.5 {
		t.Fatalf("patch must not clear untouched fields: %+v", updated)
	}

	empty := "  "
	if _, err := svc.Update(ctx, p.ID, UpdateInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}
