package timeline

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	entries []Entry
}

func (r *testRepo) Create(ctx context.Context, e Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Entry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, errRepoNotFound
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.PetID != petID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return errRepoNotFound
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Create_WeightRequiresValue(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "pet-1", CreateInput{
		Category: CategoryWeight,
		Title:    "Weigh-in",
		Date:     day(1),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without weight value, got %v", err)
	}

	zero := 0.0
	_, err = svc.Create(ctx, "pet-1", CreateInput{
		Category: CategoryWeight,
		Title:    "Weigh-in",
		Date:     day(1),
		Metadata: Metadata{WeightValue: &zero},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero weight, got %v", err)
	}

	w := 12.5
	e, err := svc.Create(ctx, "pet-1", CreateInput{
		Category: CategoryWeight,
		Title:    "Weigh-in",
		Date:     day(1),
		Metadata: Metadata{WeightValue: &w},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if e.Metadata.WeightValue == nil || *e.Metadata.WeightValue != 12.5 {
		t.Fatalf("weight value lost: %+v", e.Metadata)
	}
}

func TestService_Create_UnknownCategory(t *testing.T) {
	svc := NewService(&testRepo{})

	_, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Category: Category("grooming"),
		Title:    "Bath",
		Date:     day(1),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
}

func TestService_RecentWeightsAndSymptoms(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	w1, w2 := 12.0, 12.5
	mustCreate := func(in CreateInput) {
		t.Helper()
		if _, err := svc.Create(ctx, "pet-1", in); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	mustCreate(CreateInput{Category: CategoryWeight, Title: "w1", Date: day(1), Metadata: Metadata{WeightValue: &w1}})
	mustCreate(CreateInput{Category: CategoryWeight, Title: "w2", Date: day(5), Metadata: Metadata{WeightValue: &w2}})
	mustCreate(CreateInput{Category: CategoryIllness, Title: "Upset stomach", Date: day(3)})
	mustCreate(CreateInput{Category: CategoryVaccine, Title: "Rabies", Date: day(4)})

	weights, err := svc.RecentWeights(ctx, "pet-1", 5)
	if err != nil {
		t.Fatalf("RecentWeights error: %v", err)
	}
	if len(weights) != 2 || weights[0].Title != "w2" {
		t.Fatalf("expected 2 weights newest first, got %+v", weights)
	}

	symptoms, err := svc.RecentSymptoms(ctx, "pet-1", 3)
	if err != nil {
		t.Fatalf("RecentSymptoms error: %v", err)
	}
	if len(symptoms) != 1 || symptoms[0].Category != CategoryIllness {
		t.Fatalf("expected only illness entries, got %+v", symptoms)
	}
}
