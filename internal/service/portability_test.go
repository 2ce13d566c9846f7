package service_test

import (
	"testing"

	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/service"
	"github.com/snapcal/snapcal/internal/store"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	srcDB := newTestDB(t)
	srcRepo := store.New(srcDB)
	ledger := service.NewLedger(srcRepo)

	if _, err := service.SetProfile(srcRepo, validProfileInput()); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	date := testDate(t)
	if _, err := ledger.AddEntry(date, model.EstimationResult{Name: "Apple (medium)", Calories: 95, CarbsG: 25, ProteinG: 0.5, FatG: 0.3}); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if _, err := ledger.AddEntry(date.AddDate(0, 0, 1), model.EstimationResult{Name: "Croissant", Calories: 260, CarbsG: 30, ProteinG: 6, FatG: 12}); err != nil {
		t.Fatalf("add second day: %v", err)
	}

	data, err := service.ExportSnapshot(srcDB, srcRepo)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if data.Profile == nil || len(data.Days) != 2 {
		t.Fatalf("unexpected snapshot: profile=%v days=%d", data.Profile, len(data.Days))
	}
	if data.Days[0].Date >= data.Days[1].Date {
		t.Fatalf("expected days ordered oldest first, got %s then %s", data.Days[0].Date, data.Days[1].Date)
	}

	dstRepo := newTestRepo(t)
	report, err := service.ImportSnapshot(dstRepo, data, service.ImportOptions{Mode: service.ImportModeSkip})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 3 || report.Skipped != 0 {
		t.Fatalf("expected profile + 2 days imported, got %+v", report)
	}

	imported, err := service.NewLedger(dstRepo).LoadDay(date)
	if err != nil {
		t.Fatalf("load imported day: %v", err)
	}
	if imported.EatenCalories != 95 || len(imported.Entries) != 1 {
		t.Fatalf("imported day mismatch: %+v", imported)
	}
	profile, err := dstRepo.GetProfile()
	if err != nil {
		t.Fatalf("get imported profile: %v", err)
	}
	if profile == nil || profile.Age != 30 {
		t.Fatalf("imported profile mismatch: %+v", profile)
	}
}

func TestImportSkipModeKeepsLocalDays(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ledger := service.NewLedger(repo)
	date := testDate(t)

	if _, err := ledger.AddEntry(date, model.EstimationResult{Name: "Local lunch", Calories: 500}); err != nil {
		t.Fatalf("seed local day: %v", err)
	}

	data := &service.ExportData{
		SchemaVersion: 1,
		Days: []model.DayLog{
			{Date: "2026-05-14", EatenCalories: 999, Entries: []model.FoodEntry{{ID: "x", Name: "Remote", Calories: 999}}},
		},
	}
	report, err := service.ImportSnapshot(repo, data, service.ImportOptions{Mode: service.ImportModeSkip})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 0 || report.Skipped != 1 {
		t.Fatalf("expected day skipped, got %+v", report)
	}

	day, err := ledger.LoadDay(date)
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if day.Entries[0].Name != "Local lunch" {
		t.Fatalf("local day was overwritten: %+v", day)
	}

	report, err = service.ImportSnapshot(repo, data, service.ImportOptions{Mode: service.ImportModeReplace})
	if err != nil {
		t.Fatalf("replace import: %v", err)
	}
	if report.Imported != 1 {
		t.Fatalf("expected replace to win, got %+v", report)
	}
	day, err = ledger.LoadDay(date)
	if err != nil {
		t.Fatalf("reload day: %v", err)
	}
	if day.EatenCalories != 999 {
		t.Fatalf("expected replaced day, got %+v", day)
	}
}

func TestImportDryRunWritesNothing(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	data := &service.ExportData{
		SchemaVersion: 1,
		Days: []model.DayLog{
			{Date: "2026-05-14", EatenCalories: 95, Entries: []model.FoodEntry{{ID: "a", Name: "Apple", Calories: 95}}},
		},
	}
	report, err := service.ImportSnapshot(repo, data, service.ImportOptions{Mode: service.ImportModeSkip, DryRun: true})
	if err != nil {
		t.Fatalf("dry-run import: %v", err)
	}
	if report.Imported != 1 {
		t.Fatalf("expected dry run to count imports, got %+v", report)
	}

	day, err := service.NewLedger(repo).LoadDay(testDate(t))
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if len(day.Entries) != 0 {
		t.Fatalf("dry run must not write, got %+v", day)
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	if _, err := service.ImportSnapshot(repo, nil, service.ImportOptions{Mode: service.ImportModeSkip}); err == nil {
		t.Fatal("expected error for nil data")
	}
	if _, err := service.ImportSnapshot(repo, &service.ExportData{SchemaVersion: 99}, service.ImportOptions{Mode: service.ImportModeSkip}); err == nil {
		t.Fatal("expected error for unknown schema version")
	}
	if _, err := service.ImportSnapshot(repo, &service.ExportData{SchemaVersion: 1}, service.ImportOptions{Mode: "merge"}); err == nil {
		t.Fatal("expected error for unsupported mode")
	}
}
