package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danieljhkim/escala/internal/engine"
	"github.com/danieljhkim/escala/internal/roster"
)

func TestReports_ConflictsAfterSave(t *testing.T) {
	s := setupTestEngine(t)
	ctx := context.Background()

	// Day 7 is BRAVO (OLIMAR's group); day 10 is ALFA (LUAN's group).
	assign(t, s.eng, roster.OpPMF, 7, 0, olimar)
	assign(t, s.eng, roster.OpEscolaSegura, 10, 1, luan)
	assign(t, s.eng, roster.OpPMF, 18, 0, luan)

	pending, err := s.eng.Conflicts(ctx, &engine.ConflictsRequest{Month: april, IncludeDrafts: true})
	if err != nil {
		t.Fatalf("Conflicts() error = %v", err)
	}
	if len(pending.Report.Conflicts) != 2 {
		t.Fatalf("expected 2 pending conflicts, got %+v", pending.Report.Conflicts)
	}

	if _, err := s.eng.Save(ctx, &engine.SaveRequest{Month: april}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	result, err := s.restart().Conflicts(ctx, &engine.ConflictsRequest{Month: april})
	if err != nil {
		t.Fatalf("Conflicts() error = %v", err)
	}
	got := result.Report.Conflicts
	if len(got) != 2 {
		t.Fatalf("expected 2 conflicts, got %+v", got)
	}
	if got[0].Day != 7 || got[0].Person != olimar || got[0].Group != roster.GroupBravo || got[0].Operation != roster.OpPMF {
		t.Errorf("first conflict = %+v", got[0])
	}
	if got[1].Day != 10 || got[1].Person != luan || got[1].Operation != roster.OpEscolaSegura {
		t.Errorf("second conflict = %+v", got[1])
	}
}

func TestReports_ConflictsWithoutData(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *testSetup)
		month roster.Month
	}{
		{
			name:  "calendar missing for month",
			setup: func(s *testSetup) {},
			month: roster.NewMonth(2025, time.May),
		},
		{
			name:  "reference file missing",
			setup: func(s *testSetup) { delete(s.fs.files, s.paths.Reference) },
			month: april,
		},
		{
			name:  "reference file unreadable",
			setup: func(s *testSetup) { s.fs.files[s.paths.Reference] = []byte("personnel: [") },
			month: april,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestEngine(t)
			tt.setup(s)

			result, err := s.restart().Conflicts(context.Background(), &engine.ConflictsRequest{Month: tt.month})
			if !errors.Is(err, engine.ErrDataUnavailable) {
				t.Errorf("Conflicts() error = %v, want ErrDataUnavailable", err)
			}
			if result != nil {
				t.Errorf("a failed scan must not return a report, got %+v", result)
			}
		})
	}
}

func TestReports_SummaryAndCandidates(t *testing.T) {
	s := setupTestEngine(t)
	ctx := context.Background()

	for day := 1; day <= 10; day++ {
		assign(t, s.eng, roster.OpPMF, day, 0, luan)
	}
	assign(t, s.eng, roster.OpEscolaSegura, 11, 0, luan)
	assign(t, s.eng, roster.OpEscolaSegura, 11, 1, silva)
	if _, err := s.eng.Save(ctx, &engine.SaveRequest{Month: april}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	summary, err := s.eng.Summary(ctx, &engine.SummaryRequest{Month: april})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if len(summary.People) != 2 {
		t.Fatalf("People = %+v", summary.People)
	}
	top := summary.People[0]
	if top.Name != luan || top.Total != 11 || !top.NearLimit || top.AtLimit {
		t.Errorf("top person = %+v", top)
	}
	if top.PerOperation[roster.OpPMF] != 10 || top.PerOperation[roster.OpEscolaSegura] != 1 {
		t.Errorf("PerOperation = %v", top.PerOperation)
	}

	// One more service puts LUAN at the cap.
	assign(t, s.eng, roster.OpPMF, 12, 0, luan)

	candidates, err := s.eng.Candidates(ctx, &engine.CandidatesRequest{Operation: roster.OpPMF, Month: april, Day: 13})
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	var found bool
	for _, g := range candidates.Groups {
		for _, c := range g.Candidates {
			if c.Name != luan {
				continue
			}
			found = true
			if g.Group != roster.GroupAlfa {
				t.Errorf("%s listed under %s", luan, g.Group)
			}
			if c.Count != 12 || !c.LimitReached || !c.Blocked {
				t.Errorf("candidate %+v should be blocked at the limit", c)
			}
		}
	}
	if !found {
		t.Errorf("%s missing from candidates", luan)
	}
}
