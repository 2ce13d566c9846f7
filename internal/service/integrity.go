package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/snapcal/snapcal/internal/model"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// DoctorReport summarizes stored-record health: day records that fail to
// deserialize and day records whose cached aggregates disagree with the sum
// of their entries.
type DoctorReport struct {
	DayRecords          int `json:"day_records"`
	MalformedRecords    int `json:"malformed_records"`
	InvariantViolations int `json:"invariant_violations"`
	FixedRecords        int `json:"fixed_records,omitempty"`
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	checksumFile := backupPath + ".sha256"
	if expected, err := os.ReadFile(checksumFile); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor scans every stored day record. With fix set, malformed records
// are deleted and drifted aggregates are rebuilt from the entry list, which
// is the source of truth.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	rows, err := db.Query(`SELECT key, value FROM records WHERE key LIKE 'day\_%' ESCAPE '\'`)
	if err != nil {
		return report, fmt.Errorf("doctor day query: %w", err)
	}
	defer rows.Close()

	malformedKeys := make([]string, 0)
	drifted := make(map[string]model.DayLog)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return report, fmt.Errorf("scan day record: %w", err)
		}
		report.DayRecords++

		var day model.DayLog
		if err := json.Unmarshal([]byte(value), &day); err != nil {
			report.MalformedRecords++
			malformedKeys = append(malformedKeys, key)
			continue
		}
		if rebuilt, ok := rebuildAggregates(day); !ok {
			report.InvariantViolations++
			drifted[key] = rebuilt
		}
	}
	if err := rows.Err(); err != nil {
		return report, fmt.Errorf("iterate day records: %w", err)
	}

	if !fix {
		return report, nil
	}
	for _, key := range malformedKeys {
		if _, err := db.Exec(`DELETE FROM records WHERE key = ?`, key); err != nil {
			return report, fmt.Errorf("remove malformed record %q: %w", key, err)
		}
		report.FixedRecords++
	}
	for key, day := range drifted {
		value, err := json.Marshal(day)
		if err != nil {
			return report, fmt.Errorf("marshal rebuilt day %s: %w", day.Date, err)
		}
		if _, err := db.Exec(`UPDATE records SET value = ?, updated_at = CURRENT_TIMESTAMP WHERE key = ?`, string(value), key); err != nil {
			return report, fmt.Errorf("rewrite day record %q: %w", key, err)
		}
		report.FixedRecords++
	}
	return report, nil
}

// rebuildAggregates recomputes the four running totals from the entries and
// reports whether the stored aggregates already matched exactly.
func rebuildAggregates(day model.DayLog) (model.DayLog, bool) {
	var calories, carbs, protein, fat float64
	for _, e := range day.Entries {
		calories += e.Calories
		carbs += e.CarbsG
		protein += e.ProteinG
		fat += e.FatG
	}
	ok := floatsEqual(day.EatenCalories, calories) &&
		floatsEqual(day.CarbsG, carbs) &&
		floatsEqual(day.ProteinG, protein) &&
		floatsEqual(day.FatG, fat)
	day.EatenCalories = calories
	day.CarbsG = carbs
	day.ProteinG = protein
	day.FatG = fat
	return day, ok
}

func floatsEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	return out.Sync()
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
