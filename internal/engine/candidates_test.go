package engine

import (
	"context"
	"testing"

	"github.com/danieljhkim/escala/internal/roster"
)

func findCandidate(t *testing.T, result *CandidatesResult, name string) Candidate {
	t.Helper()
	for _, g := range result.Groups {
		for _, c := range g.Candidates {
			if c.Name == name {
				return c
			}
		}
	}
	t.Fatalf("candidate %q not listed", name)
	return Candidate{}
}

func TestCandidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.saveConfirmed(t, roster.OpPMF, silva, dayRange(1, 12)...)
	env.saveConfirmed(t, roster.OpEscolaSegura, "SD PM NAVARRO", 15)
	if _, err := env.eng.Assign(ctx, &AssignRequest{Operation: roster.OpPMF, Month: april, Day: 15, Slot: 1, Person: luan}); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	result, err := env.eng.Candidates(ctx, &CandidatesRequest{Operation: roster.OpPMF, Month: april, Day: 15})
	if err != nil {
		t.Fatalf("Candidates failed: %v", err)
	}

	wantGroups := []roster.Group{roster.GroupExpediente, roster.GroupAlfa, roster.GroupBravo, roster.GroupCharlie}
	if len(result.Groups) != len(wantGroups) {
		t.Fatalf("got %d groups, want %d", len(result.Groups), len(wantGroups))
	}
	for i, g := range wantGroups {
		if result.Groups[i].Group != g {
			t.Errorf("group[%d] = %s, want %s", i, result.Groups[i].Group, g)
		}
	}
	if first := result.Groups[0].Candidates[0]; first.Name != "CAP QOPM MUNIZ" {
		t.Errorf("EXPEDIENTE should be rank sorted, first = %s", first.Name)
	}

	tests := []struct {
		name         string
		wantBlocked  bool
		wantLimit    bool
		wantSameDay  bool
		wantSelected bool
		wantCount    int
	}{
		{silva, true, true, false, false, 12},
		{"SD PM NAVARRO", true, false, true, false, 1},
		{luan, false, false, false, true, 1},
		{olimar, false, false, false, false, 0},
	}
	for _, tt := range tests {
		c := findCandidate(t, result, tt.name)
		if c.Blocked != tt.wantBlocked || c.LimitReached != tt.wantLimit || c.SameDay != tt.wantSameDay ||
			c.Selected != tt.wantSelected || c.Count != tt.wantCount {
			t.Errorf("%s = %+v", tt.name, c)
		}
	}
}

func TestCandidates_RequiresReference(t *testing.T) {
	env := newTestEnvWithReference(t, "/nonexistent/reference.yaml")
	_, err := env.eng.Candidates(context.Background(), &CandidatesRequest{Operation: roster.OpPMF, Month: april, Day: 1})
	if err == nil {
		t.Fatal("expected error without reference data")
	}
}
