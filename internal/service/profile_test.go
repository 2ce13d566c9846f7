package service_test

import (
	"testing"

	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/service"
)

func validProfileInput() service.SetProfileInput {
	return service.SetProfileInput{
		Age:          30,
		HeightCm:     180,
		WeightKg:     80,
		Gender:       "male",
		ActivityDays: 4,
		Goal:         "maintaining",
	}
}

func TestSetProfileStoresNormalizedProfile(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	in := validProfileInput()
	in.Gender = " Male "
	in.Goal = "MAINTAINING"

	saved, err := service.SetProfile(repo, in)
	if err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if saved.Gender != model.GenderMale || saved.Goal != model.GoalMaintaining {
		t.Fatalf("expected normalized gender/goal, got %q/%q", saved.Gender, saved.Goal)
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	stored, err := service.CurrentProfile(repo)
	if err != nil {
		t.Fatalf("current profile: %v", err)
	}
	if stored == nil || stored.Age != 30 || stored.HeightCm != 180 {
		t.Fatalf("stored profile mismatch: %+v", stored)
	}
}

func TestSetProfileRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	mutations := []func(*service.SetProfileInput){
		func(in *service.SetProfileInput) { in.Age = 0 },
		func(in *service.SetProfileInput) { in.Age = -5 },
		func(in *service.SetProfileInput) { in.HeightCm = 0 },
		func(in *service.SetProfileInput) { in.WeightKg = -1 },
		func(in *service.SetProfileInput) { in.Gender = "other" },
		func(in *service.SetProfileInput) { in.Gender = "" },
		func(in *service.SetProfileInput) { in.ActivityDays = -1 },
		func(in *service.SetProfileInput) { in.ActivityDays = 8 },
		func(in *service.SetProfileInput) { in.Goal = "shredding" },
	}
	for i, mutate := range mutations {
		in := validProfileInput()
		mutate(&in)
		if _, err := service.SetProfile(repo, in); err == nil {
			t.Fatalf("case %d (%+v): expected validation error", i, in)
		}
	}

	stored, err := service.CurrentProfile(repo)
	if err != nil {
		t.Fatalf("current profile: %v", err)
	}
	if stored != nil {
		t.Fatalf("expected no profile stored after rejected inputs, got %+v", stored)
	}
}

func TestCurrentTargetsFollowsProfileEdits(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	targets, err := service.CurrentTargets(repo)
	if err != nil {
		t.Fatalf("targets without profile: %v", err)
	}
	if targets.MaxCalories != 2000 {
		t.Fatalf("expected default 2000 kcal without profile, got %d", targets.MaxCalories)
	}

	if _, err := service.SetProfile(repo, validProfileInput()); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	targets, err = service.CurrentTargets(repo)
	if err != nil {
		t.Fatalf("targets with profile: %v", err)
	}
	if targets.MaxCalories != 2759 {
		t.Fatalf("expected recomputed 2759 kcal, got %d", targets.MaxCalories)
	}

	in := validProfileInput()
	in.Goal = "cutting"
	if _, err := service.SetProfile(repo, in); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	targets, err = service.CurrentTargets(repo)
	if err != nil {
		t.Fatalf("targets after edit: %v", err)
	}
	if targets.MaxCalories != 2207 {
		t.Fatalf("expected cutting target 2207 kcal on next read, got %d", targets.MaxCalories)
	}

	if err := service.ClearProfile(repo); err != nil {
		t.Fatalf("clear profile: %v", err)
	}
	targets, err = service.CurrentTargets(repo)
	if err != nil {
		t.Fatalf("targets after clear: %v", err)
	}
	if targets.MaxCalories != 2000 {
		t.Fatalf("expected defaults after clear, got %d", targets.MaxCalories)
	}
}
