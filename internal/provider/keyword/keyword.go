// Package keyword is the deterministic local estimation fallback. It maps
// known food keywords found in a filename or label to fixed nutrition
// records, so the ledger never depends on the remote service being up.
package keyword

import (
	"strings"

	"github.com/snapcal/snapcal/internal/model"
)

type table struct {
	keyword string
	est     model.EstimationResult
}

// Ordered so matching is deterministic when a label contains several keywords.
var foods = []table{
	{"pizza", model.EstimationResult{Name: "Pepperoni pizza slice", Calories: 350, CarbsG: 33, ProteinG: 14, FatG: 20, Confidence: 0.85}},
	{"apple", model.EstimationResult{Name: "Apple (medium)", Calories: 95, CarbsG: 25, ProteinG: 0.5, FatG: 0.3, Confidence: 0.90}},
	{"banana", model.EstimationResult{Name: "Banana (medium)", Calories: 105, CarbsG: 27, ProteinG: 1.3, FatG: 0.4, Confidence: 0.88}},
	{"croissant", model.EstimationResult{Name: "Croissant", Calories: 260, CarbsG: 30, ProteinG: 6, FatG: 12, Confidence: 0.82}},
	{"burger", model.EstimationResult{Name: "Hamburger", Calories: 550, CarbsG: 40, ProteinG: 25, FatG: 32, Confidence: 0.80}},
	{"hamburger", model.EstimationResult{Name: "Hamburger", Calories: 550, CarbsG: 40, ProteinG: 25, FatG: 32, Confidence: 0.80}},
	{"salad", model.EstimationResult{Name: "Side salad", Calories: 150, CarbsG: 10, ProteinG: 3, FatG: 10, Confidence: 0.75}},
}

// unknown is returned when no keyword matches.
var unknown = model.EstimationResult{
	Name:       "Unknown food item",
	Calories:   200,
	CarbsG:     25,
	ProteinG:   8,
	FatG:       8,
	Confidence: 0.4,
}

// Match returns the fixed nutrition record for the first keyword contained
// in the label (case-insensitive), or the default unknown-food record.
func Match(label string) model.EstimationResult {
	label = strings.ToLower(label)
	for _, f := range foods {
		if strings.Contains(label, f.keyword) {
			return f.est
		}
	}
	return unknown
}
