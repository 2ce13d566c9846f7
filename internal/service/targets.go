package service

import (
	"math"

	"github.com/snapcal/snapcal/internal/model"
)

// Macro energy split and gram conversions shared by target computation and
// estimation auto-fill: 50% carbs, 20% protein, 30% fat at 4/4/9 kcal per gram.
const (
	carbsCalorieShare   = 0.5
	proteinCalorieShare = 0.2
	fatCalorieShare     = 0.3

	KcalPerGramCarbs   = 4.0
	KcalPerGramProtein = 4.0
	KcalPerGramFat     = 9.0

	defaultMaxCalories = 2000
)

// DefaultTargets is returned whenever no usable profile exists.
func DefaultTargets() model.DailyTargets {
	return model.DailyTargets{
		MaxCalories:  defaultMaxCalories,
		MacroTargets: MacroTargetsFor(defaultMaxCalories),
	}
}

// ComputeDailyTargets derives daily calorie and macro targets from a profile.
// It is total: a nil profile or one missing a required field yields the fixed
// defaults, never an error.
func ComputeDailyTargets(p *model.Profile) model.DailyTargets {
	if p == nil || p.Age <= 0 || p.HeightCm <= 0 || p.WeightKg <= 0 ||
		(p.Gender != model.GenderMale && p.Gender != model.GenderFemale) {
		return DefaultTargets()
	}

	// Mifflin-St Jeor
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * ActivityMultiplier(p.ActivityDays)

	goalMultiplier := 1.0
	switch p.Goal {
	case model.GoalCutting:
		goalMultiplier = 0.80
	case model.GoalBulking:
		goalMultiplier = 1.15
	}

	maxCalories := int(math.Round(tdee * goalMultiplier))
	return model.DailyTargets{
		MaxCalories:  maxCalories,
		MacroTargets: MacroTargetsFor(float64(maxCalories)),
	}
}

// ActivityMultiplier is a step function over training days per week.
func ActivityMultiplier(activityDays int) float64 {
	switch {
	case activityDays <= 1:
		return 1.20
	case activityDays <= 3:
		return 1.375
	case activityDays <= 5:
		return 1.55
	default:
		return 1.725
	}
}

// MacroTargetsFor splits a calorie budget into gram targets. Each gram value
// is rounded independently, so the grams need not re-sum to the budget.
func MacroTargetsFor(calories float64) model.MacroTargets {
	return model.MacroTargets{
		CarbsG:   int(math.Round(calories * carbsCalorieShare / KcalPerGramCarbs)),
		ProteinG: int(math.Round(calories * proteinCalorieShare / KcalPerGramProtein)),
		FatG:     int(math.Round(calories * fatCalorieShare / KcalPerGramFat)),
	}
}
