package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/tracker"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig points storage at a fresh SQLite file and returns the config path.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := "storage:\n" +
		"  path: " + filepath.Join(dir, "nest.db") + "\n" +
		"currency:\n" +
		"  symbol: \"$\"\n" +
		"logging:\n" +
		"  level: error\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func runNest(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func inOneYear() string {
	return time.Now().AddDate(1, 0, 0).Format("2006-01-02")
}

func TestVersion(t *testing.T) {
	out, err := runNest(t, writeConfig(t), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "nest dev\n", out)
}

func TestProjectTarget(t *testing.T) {
	out, err := runNest(t, writeConfig(t), "", "project", "target", "--amount", "12000", "--date", inOneYear())
	require.NoError(t, err)

	assert.Contains(t, out, "Save $1,000.00 per month to reach $12,000.00")
	assert.Contains(t, out, "Range (Moderate): $975.00 – $1,025.00")
	assert.Contains(t, out, "12 monthly deposits")
}

func TestProjectContribution(t *testing.T) {
	out, err := runNest(t, writeConfig(t), "", "project", "contribution",
		"--monthly", "100", "--date", inOneYear(), "--risk", "conservative")
	require.NoError(t, err)

	assert.Contains(t, out, "grows to $1,200.00")
	assert.Contains(t, out, "Range (Conservative): $1,182.00 – $1,218.00")
}

func TestProjectHighRiskBand(t *testing.T) {
	out, err := runNest(t, writeConfig(t), "", "project", "contribution",
		"--monthly", "100", "--date", inOneYear(), "--risk", "high")
	require.NoError(t, err)

	assert.Contains(t, out, "Range (High Risk): $1,128.00 – $1,272.00")
}

func TestProjectRetirement(t *testing.T) {
	out, err := runNest(t, writeConfig(t), "", "project", "retirement",
		"--age", "30", "--retire-age", "31", "--savings", "1000", "--monthly", "50")
	require.NoError(t, err)

	assert.Contains(t, out, "At 31 you would have $1,600.00 after 12 months.")
	assert.Contains(t, out, "from current savings: $1,000.00")
	assert.Contains(t, out, "from monthly deposits: $600.00")
}

func TestProjectRejectsBadInput(t *testing.T) {
	cfg := writeConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "negative amount", args: []string{"project", "target", "--amount=-5", "--date", inOneYear()}},
		{name: "past date", args: []string{"project", "target", "--amount", "100", "--date", "2001-01-01"}},
		{name: "unknown risk", args: []string{"project", "target", "--amount", "100", "--date", inOneYear(), "--risk", "yolo"}},
		{name: "unknown interest", args: []string{"project", "target", "--amount", "100", "--date", inOneYear(), "--interest", "continuous"}},
		{name: "sub-cent amount", args: []string{"project", "target", "--amount", "0.001", "--date", inOneYear()}},
		{name: "bad date", args: []string{"project", "contribution", "--monthly", "100", "--date", "next year"}},
		{name: "retire before age", args: []string{"project", "retirement", "--age", "60", "--retire-age", "50"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runNest(t, cfg, "", tt.args...)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestGoalsLifecycle(t *testing.T) {
	cfg := writeConfig(t)

	out, err := runNest(t, cfg, "", "goals", "create", "Car", "--amount", "1000", "--date", inOneYear())
	require.NoError(t, err)
	assert.Contains(t, out, `Tracking "Car"`)

	out, err = runNest(t, cfg, "", "goals", "add", "Car", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "Added $300.00 to Car")
	assert.Contains(t, out, "Quarter Way There unlocked for Car")

	out, err = runNest(t, cfg, "", "goals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "$300.00 / $1,000.00")

	out, err = runNest(t, cfg, "", "goals", "badges", "Car")
	require.NoError(t, err)
	assert.Contains(t, out, "Quarter Way There")
	assert.Contains(t, out, "Halfway Hero at 50%")

	out, err = runNest(t, cfg, "", "goals", "withdraw", "Car", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "Only $300.00 was saved")

	out, err = runNest(t, cfg, "", "goals", "history", "Car")
	require.NoError(t, err)
	withdrawal := strings.Index(out, "-$500.00")
	deposit := strings.Index(out, "+$300.00")
	require.NotEqual(t, -1, withdrawal)
	require.NotEqual(t, -1, deposit)
	assert.Less(t, withdrawal, deposit)
	assert.Contains(t, out, "Added $300.00 · Withdrawn $500.00 · Balance $0.00")

	out, err = runNest(t, cfg, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "1 goals, 0 completed")
	assert.Contains(t, out, "$1,000.00 to go")

	out, err = runNest(t, cfg, "n\n", "goals", "delete", "Car")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted")

	out, err = runNest(t, cfg, "y\n", "goals", "delete", "Car")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "Car"`)

	out, err = runNest(t, cfg, "", "goals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No goals yet")
}

func TestGoalsErrors(t *testing.T) {
	cfg := writeConfig(t)
	_, err := runNest(t, cfg, "", "goals", "create", "Trip", "--amount", "500", "--date", inOneYear())
	require.NoError(t, err)

	_, err = runNest(t, cfg, "", "goals", "add", "Nope", "5")
	assert.ErrorIs(t, err, tracker.ErrGoalNotFound)

	_, err = runNest(t, cfg, "", "goals", "create", "Trip", "--amount", "500", "--date", inOneYear())
	assert.ErrorIs(t, err, tracker.ErrDuplicateGoal)

	_, err = runNest(t, cfg, "", "goals", "add", "Trip", "abc")
	var verr *common.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = runNest(t, cfg, "", "goals", "add", "Trip", "0.001")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = runNest(t, cfg, "", "goals", "delete", "Nope", "--yes")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGoalsImport(t *testing.T) {
	cfg := writeConfig(t)
	_, err := runNest(t, cfg, "", "goals", "create", "Savings", "--amount", "5000", "--date", inOneYear())
	require.NoError(t, err)

	statement := filepath.Join("testdata", "savings.ofx")

	out, err := runNest(t, cfg, "", "goals", "import", "Savings", statement, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would add $1,250.00 and withdraw $75.50 across 3 lines")

	out, err = runNest(t, cfg, "", "goals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "$0.00 / $5,000.00", "dry run saves nothing")

	// The same statement twice is applied once.
	out, err = runNest(t, cfg, "", "goals", "import", "Savings", statement, statement)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 lines")
	assert.Contains(t, out, "$1,174.50 / $5,000.00")

	out, err = runNest(t, cfg, "", "goals", "history", "Savings")
	require.NoError(t, err)
	assert.Contains(t, out, "-$75.50")
	assert.Contains(t, out, "+$1,000.00")
}

func TestGoalsImportMissingFile(t *testing.T) {
	_, err := runNest(t, writeConfig(t), "", "goals", "import", "Savings", filepath.Join(t.TempDir(), "nope.ofx"))
	assert.ErrorContains(t, err, "no files found")
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("date", " 2027-03-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, time.March, 1, 0, 0, 0, 0, time.Local), d)

	_, err = parseDate("date", "03/01/2027")
	var verr *common.ValidationError
	assert.ErrorAs(t, err, &verr)
}
