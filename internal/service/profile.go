package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/store"
)

type SetProfileInput struct {
	Age          int
	HeightCm     float64
	WeightKg     float64
	Gender       string
	ActivityDays int
	Goal         string
	UnitPrefs    model.UnitPrefs
}

// SetProfile validates and stores the biometric profile. Invalid input is
// rejected before any mutation occurs.
func SetProfile(repo *store.Repository, in SetProfileInput) (model.Profile, error) {
	if in.Age <= 0 {
		return model.Profile{}, fmt.Errorf("age must be > 0")
	}
	if in.HeightCm <= 0 {
		return model.Profile{}, fmt.Errorf("height must be > 0")
	}
	if in.WeightKg <= 0 {
		return model.Profile{}, fmt.Errorf("weight must be > 0")
	}
	gender := strings.ToLower(strings.TrimSpace(in.Gender))
	if gender != model.GenderMale && gender != model.GenderFemale {
		return model.Profile{}, fmt.Errorf("gender must be %q or %q", model.GenderMale, model.GenderFemale)
	}
	if in.ActivityDays < 0 || in.ActivityDays > 7 {
		return model.Profile{}, fmt.Errorf("activity days must be between 0 and 7")
	}
	goal := strings.ToLower(strings.TrimSpace(in.Goal))
	switch goal {
	case model.GoalCutting, model.GoalMaintaining, model.GoalBulking:
	default:
		return model.Profile{}, fmt.Errorf("goal must be one of %s, %s, %s", model.GoalCutting, model.GoalMaintaining, model.GoalBulking)
	}

	profile := model.Profile{
		Age:          in.Age,
		HeightCm:     in.HeightCm,
		WeightKg:     in.WeightKg,
		Gender:       gender,
		ActivityDays: in.ActivityDays,
		Goal:         goal,
		UnitPrefs:    in.UnitPrefs,
		CreatedAt:    time.Now(),
	}
	if err := repo.PutProfile(profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// CurrentProfile returns the stored profile, or nil when none exists.
func CurrentProfile(repo *store.Repository) (*model.Profile, error) {
	return repo.GetProfile()
}

func ClearProfile(repo *store.Repository) error {
	return repo.ClearProfile()
}

// CurrentTargets derives targets from whatever profile is stored right now.
// Targets are never cached: a profile edit is reflected on the next read.
func CurrentTargets(repo *store.Repository) (model.DailyTargets, error) {
	profile, err := repo.GetProfile()
	if err != nil {
		return model.DailyTargets{}, err
	}
	return ComputeDailyTargets(profile), nil
}
