package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/provider/oracle"
)

// Confidence thresholds are part of the contract: below MediumConfidenceMin
// the caller is expected to offer manual correction.
const (
	HighConfidenceMin   = 0.8
	MediumConfidenceMin = 0.6

	defaultConfidence = 0.5

	unknownFoodName = "Unknown food item"
)

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

func LevelForConfidence(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= HighConfidenceMin:
		return ConfidenceHigh
	case confidence >= MediumConfidenceMin:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// NeedsManualReview reports whether an estimate is below the manual
// correction threshold.
func NeedsManualReview(confidence float64) bool {
	return confidence < MediumConfidenceMin
}

// FromOracle normalizes a raw oracle payload into the canonical estimation
// shape. Either field spelling (carbs or carbs_g) is accepted; a macro the
// service omitted is derived from calories with the standard 50/20/30 split;
// a missing confidence defaults to 0.5.
func FromOracle(resp oracle.Response) model.EstimationResult {
	name := strings.TrimSpace(resp.Food)
	if name == "" {
		name = unknownFoodName
	}

	calories := pickField(resp.Calories, resp.CaloriesEst)
	split := MacroTargetsFor(valueOrZero(calories))

	out := model.EstimationResult{
		Name:       name,
		Calories:   valueOrZero(calories),
		CarbsG:     macroOrDerived(resp.CarbsG, resp.Carbs, split.CarbsG),
		ProteinG:   macroOrDerived(resp.ProteinG, resp.Protein, split.ProteinG),
		FatG:       macroOrDerived(resp.FatG, resp.Fat, split.FatG),
		Confidence: defaultConfidence,
	}
	if resp.Confidence != nil {
		out.Confidence = clampConfidence(*resp.Confidence)
	}
	return out
}

type ManualEntryInput struct {
	Name     string
	Calories float64
	CarbsG   float64
	ProteinG float64
	FatG     float64
}

// FromManual normalizes a hand-entered estimate. When the user supplied only
// calories, macros are auto-filled with the same split the target computation
// uses; touching any macro field suppresses the auto-fill entirely. Manual
// estimates always carry confidence 0.5.
func FromManual(in ManualEntryInput) (model.EstimationResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.EstimationResult{}, fmt.Errorf("food name is required")
	}
	if in.Calories <= 0 {
		return model.EstimationResult{}, fmt.Errorf("calories must be > 0")
	}
	if err := validateNonNegativeFloat("carbs", in.CarbsG); err != nil {
		return model.EstimationResult{}, err
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return model.EstimationResult{}, err
	}
	if err := validateNonNegativeFloat("fat", in.FatG); err != nil {
		return model.EstimationResult{}, err
	}

	out := model.EstimationResult{
		Name:       name,
		Calories:   in.Calories,
		CarbsG:     in.CarbsG,
		ProteinG:   in.ProteinG,
		FatG:       in.FatG,
		Confidence: defaultConfidence,
	}
	if in.CarbsG == 0 && in.ProteinG == 0 && in.FatG == 0 {
		split := MacroTargetsFor(in.Calories)
		out.CarbsG = float64(split.CarbsG)
		out.ProteinG = float64(split.ProteinG)
		out.FatG = float64(split.FatG)
	}
	return out, nil
}

func pickField(canonical, alternate *float64) *float64 {
	if canonical != nil {
		return canonical
	}
	return alternate
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func macroOrDerived(canonical, alternate *float64, derivedGrams int) float64 {
	if v := pickField(canonical, alternate); v != nil {
		return *v
	}
	return float64(derivedGrams)
}

func clampConfidence(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
