package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/store"
)

// Ledger mutates day logs through a single serialized path so that a
// load-mutate-save sequence for one date can never interleave with another
// in this process. Cross-process writers still race (last writer wins);
// that limitation is accepted.
type Ledger struct {
	repo *store.Repository
	mu   sync.Mutex
}

func NewLedger(repo *store.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// LoadDay returns the log for the date, or a zero-valued log when the date
// has never been written.
func (l *Ledger) LoadDay(date time.Time) (model.DayLog, error) {
	return l.repo.GetDay(date)
}

// AddEntry confirms an estimation into the date's log: it appends a new
// immutable FoodEntry and bumps all four running aggregates in the same
// atomic load-mutate-persist step. On a persistence failure the error is
// returned and nothing is assumed committed.
func (l *Ledger) AddEntry(date time.Time, est model.EstimationResult) (model.FoodEntry, error) {
	name := strings.TrimSpace(est.Name)
	if name == "" {
		return model.FoodEntry{}, fmt.Errorf("entry name is required")
	}
	if err := validateNonNegativeFloat("calories", est.Calories); err != nil {
		return model.FoodEntry{}, err
	}
	if err := validateNonNegativeFloat("carbs", est.CarbsG); err != nil {
		return model.FoodEntry{}, err
	}
	if err := validateNonNegativeFloat("protein", est.ProteinG); err != nil {
		return model.FoodEntry{}, err
	}
	if err := validateNonNegativeFloat("fat", est.FatG); err != nil {
		return model.FoodEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	day, err := l.repo.GetDay(date)
	if err != nil {
		return model.FoodEntry{}, err
	}

	entry := model.FoodEntry{
		ID:         uuid.NewString(),
		Name:       name,
		Calories:   est.Calories,
		CarbsG:     est.CarbsG,
		ProteinG:   est.ProteinG,
		FatG:       est.FatG,
		RecordedAt: time.Now(),
	}

	day.Entries = append(day.Entries, entry)
	day.EatenCalories += entry.Calories
	day.CarbsG += entry.CarbsG
	day.ProteinG += entry.ProteinG
	day.FatG += entry.FatG

	if err := l.repo.PutDay(day); err != nil {
		return model.FoodEntry{}, fmt.Errorf("persist day %s: %w", day.Date, err)
	}
	return entry, nil
}

// SaveDay persists the full log under its date's key, replacing any prior
// record whole.
func (l *Ledger) SaveDay(day model.DayLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.PutDay(day)
}

// ResetDay removes the date's record. This is the only way a day log is
// ever deleted.
func (l *Ledger) ResetDay(date time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.DeleteDay(date)
}
