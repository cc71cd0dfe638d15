package reminders

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Reminder
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Reminder{}}
}

func (r *testRepo) Create(ctx context.Context, rem Reminder) error {
	r.byID[rem.ID] = rem
	return nil
}

func (r *testRepo) Update(ctx context.Context, rem Reminder) error {
	if _, ok := r.byID[rem.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Reminder, error) {
	rem, ok := r.byID[id]
	if !ok {
		return Reminder{}, errRepoNotFound
	}
	return rem, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Reminder, error) {
	out := make([]Reminder, 0)
	for _, rem := range r.byID {
		if rem.PetID != petID {
			continue
		}
		if filter.Status != "" && rem.Status != filter.Status {
			continue
		}
		out = append(out, rem)
	}
	return out, nil
}

func TestService_Create_Defaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rem, err := svc.Create(context.Background(), "user-1", "pet-1", CreateInput{
		Title: "Rabies booster",
		Date:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:  "vaccine",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rem.Status != StatusPending {
		t.Fatalf("expected pending, got %s", rem.Status)
	}
	if rem.Recurring || rem.RecurringInterval != "" {
		t.Fatalf("non-recurring reminder must have no interval")
	}
	if rem.CreatedAt != now || rem.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_RecurringGetsYearlyInterval(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	rem, err := svc.Create(context.Background(), "user-1", "pet-1", CreateInput{
		Title:     "Annual checkup",
		Date:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Recurring: true,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rem.RecurringInterval != IntervalYearly {
		t.Fatalf("expected yearly interval, got %q", rem.RecurringInterval)
	}
}

func TestService_Complete_NonRecurring_MarksDone(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	rem, err := svc.Create(context.Background(), "user-1", "pet-1", CreateInput{
		Title: "Deworming",
		Date:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	done, err := svc.Complete(context.Background(), rem.ID)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if done.Status != StatusDone {
		t.Fatalf("expected done, got %s", done.Status)
	}
	if !done.Date.Equal(rem.Date) {
		t.Fatalf("non-recurring complete must not move the date")
	}
}

func TestService_Complete_Recurring_RearmsOneYearAhead(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	rem, err := svc.Create(context.Background(), "user-1", "pet-1", CreateInput{
		Title:     "Annual checkup",
		Date:      date,
		Recurring: true,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	rearmed, err := svc.Complete(context.Background(), rem.ID)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if rearmed.Status != StatusPending {
		t.Fatalf("recurring reminder must stay pending, got %s", rearmed.Status)
	}
	if !rearmed.Date.Equal(date.AddDate(1, 0, 0)) {
		t.Fatalf("expected date one year ahead, got %s", rearmed.Date)
	}
}

func TestService_Create_RejectsMissingFields(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []CreateInput{
		{Title: "", Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "No date"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), "user-1", "pet-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}
