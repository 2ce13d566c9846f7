package service_test

import (
	"testing"

	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/service"
)

func TestProjectCapsCompletionButKeepsRatio(t *testing.T) {
	t.Parallel()

	day := model.DayLog{Date: "2026-05-14", EatenCalories: 2500}
	targets := service.DefaultTargets()

	dash := service.Project(day, targets)
	if dash.CompletionPercent != 100 {
		t.Fatalf("expected completion capped at 100, got %v", dash.CompletionPercent)
	}
	if dash.ConsumedRatio != 1.25 {
		t.Fatalf("expected uncapped ratio 1.25, got %v", dash.ConsumedRatio)
	}
	if dash.RemainingCalories != 0 {
		t.Fatalf("expected remaining floored at 0, got %v", dash.RemainingCalories)
	}
}

func TestProjectEmptyDay(t *testing.T) {
	t.Parallel()

	day := model.DayLog{Date: "2026-05-14"}
	dash := service.Project(day, service.DefaultTargets())

	if dash.EatenCalories != 0 || dash.CompletionPercent != 0 || dash.ConsumedRatio != 0 {
		t.Fatalf("expected zero consumption, got %+v", dash)
	}
	if dash.RemainingCalories != 2000 {
		t.Fatalf("expected full budget remaining, got %v", dash.RemainingCalories)
	}
	if dash.Carbs.PercentOfConsumed != 0 || dash.Protein.PercentOfConsumed != 0 || dash.Fat.PercentOfConsumed != 0 {
		t.Fatalf("expected zero macro percentages on an empty day, got %+v", dash)
	}
}

func TestProjectMacroShares(t *testing.T) {
	t.Parallel()

	day := model.DayLog{
		Date:          "2026-05-14",
		EatenCalories: 1000,
		CarbsG:        100, // 400 kcal
		ProteinG:      50,  // 200 kcal
		FatG:          40,  // 360 kcal
	}
	targets := service.DefaultTargets()

	dash := service.Project(day, targets)
	if dash.Carbs.Calories != 400 || dash.Carbs.PercentOfConsumed != 40 {
		t.Fatalf("carbs share wrong: %+v", dash.Carbs)
	}
	if dash.Protein.Calories != 200 || dash.Protein.PercentOfConsumed != 20 {
		t.Fatalf("protein share wrong: %+v", dash.Protein)
	}
	if dash.Fat.Calories != 360 || dash.Fat.PercentOfConsumed != 36 {
		t.Fatalf("fat share wrong: %+v", dash.Fat)
	}
	if dash.Carbs.TargetGrams != targets.MacroTargets.CarbsG {
		t.Fatalf("expected carbs target %d, got %d", targets.MacroTargets.CarbsG, dash.Carbs.TargetGrams)
	}
}

func TestProjectDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	day := model.DayLog{
		Date:          "2026-05-14",
		EatenCalories: 350,
		CarbsG:        33,
		ProteinG:      14,
		FatG:          20,
		Entries: []model.FoodEntry{
			{ID: "a", Name: "Pepperoni pizza slice", Calories: 350, CarbsG: 33, ProteinG: 14, FatG: 20},
		},
	}
	targets := service.DefaultTargets()

	before := day
	_ = service.Project(day, targets)
	if day.EatenCalories != before.EatenCalories || len(day.Entries) != 1 {
		t.Fatalf("projection mutated the day log: %+v", day)
	}
}

func TestProjectZeroMaxCalories(t *testing.T) {
	t.Parallel()

	day := model.DayLog{Date: "2026-05-14", EatenCalories: 500}
	dash := service.Project(day, model.DailyTargets{})
	if dash.ConsumedRatio != 0 || dash.CompletionPercent != 0 {
		t.Fatalf("expected zero ratio with zero budget, got %+v", dash)
	}
}
