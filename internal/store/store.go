// Package store is the typed repository over the string-keyed record table.
// It owns the key-encoding scheme and all (de)serialization: callers never
// see raw keys or JSON, and a malformed stored record is substituted with
// the documented default value for that entity rather than surfaced.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/snapcal/snapcal/internal/model"
)

const (
	profileKey   = "profile"
	dayKeyPrefix = "day_"
	dateLayout   = "2006-01-02"
)

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DayKey derives the deterministic storage key for a calendar date. The
// zero-padded year/month/day components keep lookups locale-independent.
func DayKey(date time.Time) string {
	return dayKeyPrefix + date.Format(dateLayout)
}

// GetProfile returns the stored profile, or nil when none exists. A record
// that fails to deserialize is treated as absent.
func (r *Repository) GetProfile() (*model.Profile, error) {
	raw, ok, err := r.getRecord(profileKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, nil
	}
	return &p, nil
}

func (r *Repository) PutProfile(p model.Profile) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return r.putRecord(profileKey, string(value))
}

func (r *Repository) ClearProfile() error {
	return r.deleteRecord(profileKey)
}

// GetDay returns the persisted log for the date, or a zero-valued DayLog
// when no record exists or the stored record is malformed. The default is
// not persisted; days come into being on first write.
func (r *Repository) GetDay(date time.Time) (model.DayLog, error) {
	raw, ok, err := r.getRecord(DayKey(date))
	if err != nil {
		return model.DayLog{}, err
	}
	if ok {
		var day model.DayLog
		if err := json.Unmarshal([]byte(raw), &day); err == nil {
			if day.Entries == nil {
				day.Entries = make([]model.FoodEntry, 0)
			}
			return day, nil
		}
	}
	return model.DayLog{
		Date:    date.Format(dateLayout),
		Entries: make([]model.FoodEntry, 0),
	}, nil
}

// PutDay persists the full DayLog under its date's key, replacing any prior
// record whole.
func (r *Repository) PutDay(day model.DayLog) error {
	date, err := time.ParseInLocation(dateLayout, day.Date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid day date %q (expected YYYY-MM-DD)", day.Date)
	}
	value, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("marshal day %s: %w", day.Date, err)
	}
	return r.putRecord(DayKey(date), string(value))
}

func (r *Repository) DeleteDay(date time.Time) error {
	return r.deleteRecord(DayKey(date))
}

func (r *Repository) getRecord(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read record %q: %w", key, err)
	}
	return value, true, nil
}

func (r *Repository) putRecord(key, value string) error {
	_, err := r.db.Exec(`
INSERT INTO records(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=CURRENT_TIMESTAMP
`, key, value)
	if err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	return nil
}

func (r *Repository) deleteRecord(key string) error {
	if _, err := r.db.Exec(`DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}
