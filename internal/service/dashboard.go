package service

import (
	"math"

	"github.com/snapcal/snapcal/internal/model"
)

// MacroShare describes one macro's contribution to the day's consumption.
type MacroShare struct {
	Grams             float64 `json:"grams"`
	Calories          float64 `json:"calories"`
	PercentOfConsumed int     `json:"percent_of_consumed"`
	TargetGrams       int     `json:"target_grams"`
}

// Dashboard is the display-ready projection of a day against its targets.
// It is recomputed in full on every read and holds no state of its own.
type Dashboard struct {
	Date              string            `json:"date"`
	EatenCalories     float64           `json:"eaten_calories"`
	MaxCalories       int               `json:"max_calories"`
	RemainingCalories float64           `json:"remaining_calories"`
	CompletionPercent float64           `json:"completion_percent"`
	ConsumedRatio     float64           `json:"consumed_ratio"`
	Carbs             MacroShare        `json:"carbs"`
	Protein           MacroShare        `json:"protein"`
	Fat               MacroShare        `json:"fat"`
	Entries           []model.FoodEntry `json:"entries"`
}

// Project derives the dashboard view from a day log and targets without
// mutating either. The completion percent is capped at 100 even when more
// than the budget was eaten; ConsumedRatio keeps the uncapped value. The
// three macro percentages are each rounded independently and need not sum
// to exactly 100.
func Project(day model.DayLog, targets model.DailyTargets) Dashboard {
	ratio := 0.0
	if targets.MaxCalories > 0 {
		ratio = day.EatenCalories / float64(targets.MaxCalories)
	}

	completion := ratio * 100
	if completion < 0 {
		completion = 0
	}
	if completion > 100 {
		completion = 100
	}

	return Dashboard{
		Date:              day.Date,
		EatenCalories:     day.EatenCalories,
		MaxCalories:       targets.MaxCalories,
		RemainingCalories: math.Max(0, float64(targets.MaxCalories)-day.EatenCalories),
		CompletionPercent: completion,
		ConsumedRatio:     ratio,
		Carbs:             macroShare(day.CarbsG, KcalPerGramCarbs, targets.MacroTargets.CarbsG, day.EatenCalories),
		Protein:           macroShare(day.ProteinG, KcalPerGramProtein, targets.MacroTargets.ProteinG, day.EatenCalories),
		Fat:               macroShare(day.FatG, KcalPerGramFat, targets.MacroTargets.FatG, day.EatenCalories),
		Entries:           day.Entries,
	}
}

func macroShare(grams, kcalPerGram float64, targetGrams int, eatenCalories float64) MacroShare {
	calories := grams * kcalPerGram
	percent := 0
	if eatenCalories > 0 {
		percent = int(math.Round(calories / eatenCalories * 100))
	}
	return MacroShare{
		Grams:             grams,
		Calories:          calories,
		PercentOfConsumed: percent,
		TargetGrams:       targetGrams,
	}
}
