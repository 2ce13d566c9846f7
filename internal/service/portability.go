package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/store"
)

const exportSchemaVersion = 1

// ExportData is the portable snapshot of everything the store holds: the
// profile (if any) and every day log, oldest first.
type ExportData struct {
	SchemaVersion int            `json:"schema_version"`
	ExportedAt    time.Time      `json:"exported_at"`
	Profile       *model.Profile `json:"profile,omitempty"`
	Days          []model.DayLog `json:"days"`
}

type ImportMode string

const (
	ImportModeSkip    ImportMode = "skip"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// ExportSnapshot reads the full store into a portable document. Malformed
// day records are skipped rather than failing the export.
func ExportSnapshot(db *sql.DB, repo *store.Repository) (*ExportData, error) {
	out := &ExportData{
		SchemaVersion: exportSchemaVersion,
		ExportedAt:    time.Now().UTC(),
		Days:          make([]model.DayLog, 0),
	}

	profile, err := repo.GetProfile()
	if err != nil {
		return nil, err
	}
	out.Profile = profile

	rows, err := db.Query(`SELECT value FROM records WHERE key LIKE 'day\_%' ESCAPE '\' ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("export day query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan day record: %w", err)
		}
		var day model.DayLog
		if err := json.Unmarshal([]byte(value), &day); err != nil {
			continue
		}
		out.Days = append(out.Days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day records: %w", err)
	}
	return out, nil
}

// ImportSnapshot writes an exported document back into the store. With mode
// skip, days that already exist locally are left untouched; with mode
// replace, the imported day wins. The profile is only imported when none is
// stored, regardless of mode.
func ImportSnapshot(repo *store.Repository, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("nothing to import")
	}
	if data.SchemaVersion > exportSchemaVersion {
		return report, fmt.Errorf("unsupported export schema version %d", data.SchemaVersion)
	}
	switch opts.Mode {
	case ImportModeSkip, ImportModeReplace:
	default:
		return report, fmt.Errorf("import mode must be %q or %q", ImportModeSkip, ImportModeReplace)
	}

	if data.Profile != nil {
		existing, err := repo.GetProfile()
		if err != nil {
			return report, err
		}
		if existing == nil {
			if !opts.DryRun {
				if err := repo.PutProfile(*data.Profile); err != nil {
					return report, err
				}
			}
			report.Imported++
		} else {
			report.Skipped++
			report.Warnings = append(report.Warnings, "profile already set; kept the local one")
		}
	}

	for _, day := range data.Days {
		date, err := time.ParseInLocation(dateLayout, day.Date, time.Local)
		if err != nil {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("skipped day with invalid date %q", day.Date))
			continue
		}
		if opts.Mode == ImportModeSkip {
			existing, err := repo.GetDay(date)
			if err != nil {
				return report, err
			}
			if len(existing.Entries) > 0 {
				report.Skipped++
				continue
			}
		}
		if !opts.DryRun {
			if err := repo.PutDay(day); err != nil {
				return report, fmt.Errorf("import day %s: %w", day.Date, err)
			}
		}
		report.Imported++
	}
	return report, nil
}
