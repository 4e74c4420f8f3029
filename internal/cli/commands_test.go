package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/danieljhkim/escala/internal/engine"
)

const (
	olimar = "1º SGT PM OLIMAR"
	luan   = "SD PM LUAN"
	april  = "2025-04"
)

// runCLI executes the root command with fresh flag values and returns what
// it wrote.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupRoot points ESCALA_ROOT at a temp dir holding the April 2025 reference
// file.
func setupRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ESCALA_ROOT", root)

	data, err := os.ReadFile(filepath.Join("..", "reference", "testdata", "april-2025.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "reference.yaml"), data, 0o644); err != nil {
		t.Fatalf("write reference: %v", err)
	}
	return root
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("escala %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return stdout
}

func TestAssignShowSave(t *testing.T) {
	setupRoot(t)

	out := mustRun(t, "assign", "--month", april, "--day", "7", olimar)
	if !strings.Contains(out, "Placed "+olimar+" in PMF 2025-04 day 7 slot 1") {
		t.Errorf("assign output = %q", out)
	}

	out = mustRun(t, "show", "--month", april)
	if !strings.Contains(out, "07*") || !strings.Contains(out, olimar) {
		t.Errorf("show should list the pending day:\n%s", out)
	}
	if !strings.Contains(out, "1 day with unsaved edits") {
		t.Errorf("show should warn about pending edits:\n%s", out)
	}

	out = mustRun(t, "save", "--month", april)
	if !strings.Contains(out, "Saved PMF 2025-04") {
		t.Errorf("save output = %q", out)
	}

	out = mustRun(t, "show", "--month", april)
	if strings.Contains(out, "07*") || !strings.Contains(out, olimar) {
		t.Errorf("show after save should list the confirmed day without a pending mark:\n%s", out)
	}

	out = mustRun(t, "save", "--month", april)
	if !strings.Contains(out, "No pending edits") {
		t.Errorf("second save output = %q", out)
	}
}

func TestAssign_SameDayRejected(t *testing.T) {
	setupRoot(t)

	mustRun(t, "assign", "--month", april, "--day", "3", olimar)
	_, _, err := runCLI(t, "assign", "--op", "es", "--month", april, "--day", "3", olimar)
	if !errors.Is(err, engine.ErrAlreadyOnDay) {
		t.Errorf("assign in the other operation on the same day: error = %v, want ErrAlreadyOnDay", err)
	}
}

func TestAssign_LimitExceeded(t *testing.T) {
	setupRoot(t)

	for day := 1; day <= 12; day++ {
		mustRun(t, "assign", "--month", april, "--day", fmt.Sprint(day), luan)
	}

	_, stderr, err := runCLI(t, "assign", "--op", "es", "--month", april, "--day", "20", luan)
	if !errors.Is(err, engine.ErrLimitExceeded) {
		t.Fatalf("13th service: error = %v, want ErrLimitExceeded", err)
	}
	if !strings.Contains(stderr, "already has 12 services this month (limit 12)") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestAssign_JSON(t *testing.T) {
	setupRoot(t)

	out := mustRun(t, "--json", "assign", "--month", april, "--day", "9", "--slot", "2", luan)
	var result engine.AssignResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if result.Slot != 1 || result.Person != luan || !result.Changed {
		t.Errorf("result = %+v", result)
	}
	if result.Row[1] != luan {
		t.Errorf("Row = %v, want %s in the second slot", result.Row, luan)
	}
}

func TestClearAndDiscard(t *testing.T) {
	setupRoot(t)

	mustRun(t, "assign", "--month", april, "--day", "5", olimar)
	out := mustRun(t, "clear", "--month", april, "--day", "5")
	if !strings.Contains(out, "Cleared PMF 2025-04 day 5 slot 1") {
		t.Errorf("clear output = %q", out)
	}

	mustRun(t, "assign", "--month", april, "--day", "6", olimar)
	out = mustRun(t, "discard", "--month", april)
	if !strings.Contains(out, "PMF") {
		t.Errorf("discard output = %q", out)
	}

	out = mustRun(t, "--json", "show", "--month", april)
	var view engine.ViewResult
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(view.Pending) != 0 || view.Merged.Filled() != 0 {
		t.Errorf("after discard: pending %v, filled %d", view.Pending, view.Merged.Filled())
	}
}

func TestConflicts(t *testing.T) {
	setupRoot(t)

	out := mustRun(t, "conflicts", "--month", april)
	if !strings.Contains(out, "No conflicts in 2025-04 (30 days checked)") {
		t.Errorf("empty conflicts output = %q", out)
	}

	// Day 7 is BRAVO on the calendar; OLIMAR is BRAVO.
	mustRun(t, "assign", "--month", april, "--day", "7", olimar)

	out = mustRun(t, "conflicts", "--month", april)
	if !strings.Contains(out, "No conflicts") {
		t.Errorf("unsaved edits should not count without --drafts:\n%s", out)
	}

	out = mustRun(t, "conflicts", "--month", april, "--drafts")
	for _, want := range []string{olimar, "BRAVO", "PMF", "1 conflict found on 1 day"} {
		if !strings.Contains(out, want) {
			t.Errorf("conflicts output missing %q:\n%s", want, out)
		}
	}
}

func TestConflicts_MissingReference(t *testing.T) {
	root := setupRoot(t)
	if err := os.Remove(filepath.Join(root, "reference.yaml")); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "conflicts", "--month", april)
	if !errors.Is(err, engine.ErrDataUnavailable) {
		t.Fatalf("error = %v, want ErrDataUnavailable", err)
	}
	if strings.Contains(stdout, "No conflicts") {
		t.Error("a failed scan must not report an empty result")
	}
}

func TestCandidates(t *testing.T) {
	setupRoot(t)
	mustRun(t, "assign", "--month", april, "--day", "7", olimar)

	out := mustRun(t, "--json", "candidates", "--month", april, "--day", "7")
	var result engine.CandidatesResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(result.Groups) == 0 {
		t.Fatal("expected candidate groups")
	}

	var found bool
	for _, g := range result.Groups {
		for _, c := range g.Candidates {
			if c.Name == olimar {
				found = true
				if !c.Selected {
					t.Errorf("%s should be marked selected on day 7", olimar)
				}
			}
		}
	}
	if !found {
		t.Errorf("%s missing from candidates", olimar)
	}

	for _, style := range []string{"compact", "detailed"} {
		out := mustRun(t, "candidates", "--month", april, "--day", "7", "--style", style)
		if !strings.Contains(out, luan) {
			t.Errorf("--style %s output missing %s:\n%s", style, luan, out)
		}
	}

	if _, _, err := runCLI(t, "candidates", "--month", april, "--day", "7", "--style", "fancy"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestSummary(t *testing.T) {
	setupRoot(t)
	mustRun(t, "assign", "--month", april, "--day", "10", luan)
	mustRun(t, "assign", "--op", "es", "--month", april, "--day", "11", luan)

	tests := []struct {
		by   string
		want []string
	}{
		{"person", []string{luan, "ALFA"}},
		{"group", []string{"ALFA", "2 services"}},
		{"occupancy", []string{"PMF", "ESCOLA SEGURA"}},
	}

	for _, tt := range tests {
		t.Run(tt.by, func(t *testing.T) {
			out := mustRun(t, "summary", "--month", april, "--drafts", "--by", tt.by)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("summary --by %s missing %q:\n%s", tt.by, want, out)
				}
			}
		})
	}

	if _, _, err := runCLI(t, "summary", "--by", "rank"); err == nil {
		t.Error("expected error for unknown --by")
	}
}

func TestSummary_JSON(t *testing.T) {
	setupRoot(t)
	mustRun(t, "assign", "--month", april, "--day", "10", luan)
	mustRun(t, "save", "--month", april)

	out := mustRun(t, "--json", "summary", "--month", april)
	var result engine.SummaryResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(result.People) != 1 || result.People[0].Name != luan || result.People[0].Total != 1 {
		t.Errorf("People = %+v", result.People)
	}
	if !result.DirectoryLoaded {
		t.Error("DirectoryLoaded should be true")
	}
}

func TestReferenceCheck(t *testing.T) {
	root := setupRoot(t)

	out := mustRun(t, "reference", "check")
	for _, want := range []string{"People", "33", "2025-04", "No issues found"} {
		if !strings.Contains(out, want) {
			t.Errorf("reference check output missing %q:\n%s", want, out)
		}
	}

	broken := `personnel:
  - {name: "SD PM LUAN", group: ALFA}
  - {name: "SD PM LUAN", group: CHARLIE}
calendars:
  "2025-04":
    31: ALFA
`
	if err := os.WriteFile(filepath.Join(root, "reference.yaml"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "reference", "check")
	if err == nil {
		t.Fatal("expected error when the reference file has issues")
	}
	if !strings.Contains(out, "day_out_of_range") || !strings.Contains(out, "inconsistent_group") {
		t.Errorf("reference check should list issues:\n%s", out)
	}
}

func TestSave_DryRun(t *testing.T) {
	setupRoot(t)
	mustRun(t, "assign", "--month", april, "--day", "12", luan)

	out := mustRun(t, "save", "--month", april, "--dry-run")
	for _, want := range []string{"fill", luan, "Dry run: nothing was saved"} {
		if !strings.Contains(out, want) {
			t.Errorf("dry-run output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "show", "--month", april)
	if !strings.Contains(out, "12*") {
		t.Errorf("edits should still be pending after a dry run:\n%s", out)
	}
}

func TestMonths(t *testing.T) {
	setupRoot(t)

	out := mustRun(t, "months")
	if !strings.Contains(out, "No saved rosters") {
		t.Errorf("months output = %q", out)
	}

	mustRun(t, "assign", "--month", april, "--day", "2", olimar)
	mustRun(t, "save", "--month", april)

	out = mustRun(t, "months")
	for _, want := range []string{"2025-04", "PMF", "1 / 90"} {
		if !strings.Contains(out, want) {
			t.Errorf("months output missing %q:\n%s", want, out)
		}
	}
}
