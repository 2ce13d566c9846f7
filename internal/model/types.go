package model

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"

	GoalCutting     = "cutting"
	GoalMaintaining = "maintaining"
	GoalBulking     = "bulking"
)

// UnitPrefs remembers which units the profile was entered in so the CLI can
// display it the same way. Stored values are always metric.
type UnitPrefs struct {
	Height string `json:"height,omitempty"`
	Weight string `json:"weight,omitempty"`
}

type Profile struct {
	Age          int       `json:"age"`
	HeightCm     float64   `json:"height_cm"`
	WeightKg     float64   `json:"weight_kg"`
	Gender       string    `json:"gender"`
	ActivityDays int       `json:"activity_days"`
	Goal         string    `json:"goal"`
	UnitPrefs    UnitPrefs `json:"unit_prefs,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type MacroTargets struct {
	CarbsG   int `json:"carbs_g"`
	ProteinG int `json:"protein_g"`
	FatG     int `json:"fat_g"`
}

// DailyTargets is derived from the profile on every read and never persisted.
type DailyTargets struct {
	MaxCalories  int          `json:"max_calories"`
	MacroTargets MacroTargets `json:"macro_targets"`
}

type FoodEntry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Calories   float64   `json:"calories"`
	CarbsG     float64   `json:"carbs_g"`
	ProteinG   float64   `json:"protein_g"`
	FatG       float64   `json:"fat_g"`
	RecordedAt time.Time `json:"recorded_at"`
}

// DayLog holds one calendar day of entries plus running aggregates. The
// aggregates are a materialized cache of the entry list: every mutation must
// update both together, and each aggregate equals the sum of that field
// across Entries at all times.
type DayLog struct {
	Date          string      `json:"date"`
	EatenCalories float64     `json:"eaten_calories"`
	CarbsG        float64     `json:"carbs_g"`
	ProteinG      float64     `json:"protein_g"`
	FatG          float64     `json:"fat_g"`
	Entries       []FoodEntry `json:"entries"`
}

// EstimationResult is the canonical estimate shape consumed by the ledger.
// It is ephemeral: confirmed once into a FoodEntry, discarded otherwise.
type EstimationResult struct {
	Name       string  `json:"name"`
	Calories   float64 `json:"calories"`
	CarbsG     float64 `json:"carbs_g"`
	ProteinG   float64 `json:"protein_g"`
	FatG       float64 `json:"fat_g"`
	Confidence float64 `json:"confidence"`
}
