package snapcal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlagState zeroes the package-level flag targets so that values parsed
// by one Execute call cannot leak into the next within the test process.
func resetFlagState() {
	addImage, addName, addDate = "", "", ""
	addOffline = false
	addCalories, addCarbs, addProtein, addFat = 0, 0, 0, 0
	resetDate, dayDate = "", ""
	doctorFix = false
}

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	resetFlagState()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	out := runCommand(t, "--help")
	if out == "" {
		t.Fatal("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapcal.db")
	for i := 0; i < 2; i++ {
		runCommand(t, "--db", path, "init")
	}
}

func TestProfileAndTargetsFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapcal.db")

	runCommand(t, "--db", path, "init")
	runCommand(t, "--db", path,
		"profile", "set",
		"--age", "30", "--height", "180", "--weight", "80",
		"--gender", "male", "--activity-days", "4", "--goal", "maintaining",
	)

	out := runCommand(t, "--db", path, "targets")
	if !strings.Contains(out, "2759") {
		t.Fatalf("expected computed calorie target in output, got:\n%s", out)
	}

	out = runCommand(t, "--db", path, "profile", "show")
	if !strings.Contains(out, "180") || !strings.Contains(out, "maintaining") {
		t.Fatalf("expected profile fields in output, got:\n%s", out)
	}
}

func TestTargetsDefaultWithoutProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapcal.db")
	runCommand(t, "--db", path, "init")

	out := runCommand(t, "--db", path, "targets")
	if !strings.Contains(out, "2000") {
		t.Fatalf("expected default 2000 kcal target, got:\n%s", out)
	}
}

func TestAddManualAndDayDashboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapcal.db")
	runCommand(t, "--db", path, "init")

	runCommand(t, "--db", path,
		"add", "--name", "Leftover pasta", "--calories", "400",
		"--date", "2026-05-14",
	)

	out := runCommand(t, "--db", path, "day", "--date", "2026-05-14")
	if !strings.Contains(out, "Leftover pasta") {
		t.Fatalf("expected entry in dashboard, got:\n%s", out)
	}
	if !strings.Contains(out, "400") {
		t.Fatalf("expected eaten calories in dashboard, got:\n%s", out)
	}
}

func TestAddOfflineUsesKeywordFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapcal.db")
	image := filepath.Join(dir, "grilled pizza slice.jpg")
	writeTestFile(t, image, []byte("fake jpeg bytes"))

	runCommand(t, "--db", path, "init")
	runCommand(t, "--db", path,
		"add", "--image", image, "--offline", "--date", "2026-05-14",
	)

	out := runCommand(t, "--db", path, "day", "--date", "2026-05-14")
	if !strings.Contains(out, "Pepperoni pizza slice") {
		t.Fatalf("expected keyword fallback entry, got:\n%s", out)
	}
}

func TestResetClearsDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapcal.db")
	runCommand(t, "--db", path, "init")

	runCommand(t, "--db", path,
		"add", "--name", "Croissant", "--calories", "260", "--date", "2026-05-14",
	)
	runCommand(t, "--db", path, "reset", "--date", "2026-05-14")

	out := runCommand(t, "--db", path, "day", "--date", "2026-05-14")
	if strings.Contains(out, "Croissant") {
		t.Fatalf("expected day cleared, got:\n%s", out)
	}
}

func TestEstimateCheckModeDoesNotLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapcal.db")
	image := filepath.Join(dir, "banana.png")
	writeTestFile(t, image, []byte("fake png bytes"))

	runCommand(t, "--db", path, "init")
	out := runCommand(t, "--db", path, "estimate", "--image", image, "--offline")
	if !strings.Contains(out, "Banana (medium)") {
		t.Fatalf("expected fallback estimate printed, got:\n%s", out)
	}

	day := runCommand(t, "--db", path, "day", "--date", "2026-05-14")
	if strings.Contains(day, "Banana") {
		t.Fatalf("estimate must not write to the ledger, got:\n%s", day)
	}
}

func TestDoctorOnHealthyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapcal.db")
	runCommand(t, "--db", path, "init")
	runCommand(t, "--db", path,
		"add", "--name", "Apple", "--calories", "95", "--date", "2026-05-14",
	)

	out := runCommand(t, "--db", path, "doctor")
	if !strings.Contains(out, "1") {
		t.Fatalf("expected scanned record count, got:\n%s", out)
	}
}
