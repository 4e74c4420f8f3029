package state

import (
	"reflect"
	"testing"
	"time"

	"github.com/danieljhkim/escala/internal/roster"
)

var april = roster.NewMonth(2025, time.April)

func confirmedPMF(t *testing.T, days map[int]roster.Row) *roster.MonthRoster {
	t.Helper()
	r := roster.NewMonthRoster(roster.OpPMF, april)
	for day, row := range days {
		r.SetRow(day, row)
	}
	return r
}

func TestNewDraft(t *testing.T) {
	now := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	a := NewDraft(roster.OpPMF, april, "abc", now)
	b := NewDraft(roster.OpPMF, april, "abc", now)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("draft IDs should be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if !a.Empty() {
		t.Error("new draft should be empty")
	}
	if !a.StartedAt.Equal(now) || a.BaseChecksum != "abc" {
		t.Errorf("unexpected draft header: %+v", a)
	}
}

func TestDraft_Apply(t *testing.T) {
	now := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	confirmed := confirmedPMF(t, map[int]roster.Row{
		3: {"SD PM LUAN", "", ""},
		4: {"CB PM BRASIL", "SD PM MARVÃO", ""},
	})

	d := NewDraft(roster.OpPMF, april, "", now)
	d.Stage(3, roster.Row{"", "", ""}, now)
	d.Stage(5, roster.Row{"SD PM CHAGAS", "", ""}, now)

	merged := d.Apply(confirmed)

	if _, ok := merged.Days[3]; ok {
		t.Error("cleared day 3 should be removed from merged roster")
	}
	if got := merged.Row(4); !reflect.DeepEqual(got, roster.Row{"CB PM BRASIL", "SD PM MARVÃO", ""}) {
		t.Errorf("untouched day 4 = %v", got)
	}
	if got := merged.Row(5); got[0] != "SD PM CHAGAS" {
		t.Errorf("staged day 5 = %v", got)
	}
	if confirmed.Row(3)[0] != "SD PM LUAN" {
		t.Error("Apply must not modify the confirmed roster")
	}
	if got := d.Touched(); !reflect.DeepEqual(got, []int{3, 5}) {
		t.Errorf("Touched() = %v, want [3 5]", got)
	}

	var none *Draft
	if got := none.Apply(confirmed); !reflect.DeepEqual(got, confirmed) {
		t.Errorf("nil draft Apply = %v, want copy of confirmed", got)
	}
}

func TestDraft_Additions(t *testing.T) {
	now := time.Now()
	confirmed := confirmedPMF(t, map[int]roster.Row{
		7: {"1º SGT PM OLIMAR", "SD PM LUAN", ""},
	})

	tests := []struct {
		name  string
		stage map[int]roster.Row
		want  map[int]roster.Row
	}{
		{
			name:  "nothing staged",
			stage: nil,
			want:  map[int]roster.Row{},
		},
		{
			name:  "new day",
			stage: map[int]roster.Row{8: {"SD PM LUAN", "", ""}},
			want:  map[int]roster.Row{8: {"SD PM LUAN", "", ""}},
		},
		{
			name:  "existing occupants are not additions",
			stage: map[int]roster.Row{7: {"1º SGT PM OLIMAR", "SD PM LUAN", "CB CARLA"}},
			want:  map[int]roster.Row{7: {"", "", "CB CARLA"}},
		},
		{
			name:  "moving within the row is not an addition",
			stage: map[int]roster.Row{7: {"SD PM LUAN", "", "1º SGT PM OLIMAR"}},
			want:  map[int]roster.Row{},
		},
		{
			name:  "removal only",
			stage: map[int]roster.Row{7: {"", "", ""}},
			want:  map[int]roster.Row{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(roster.OpPMF, april, "", now)
			for day, row := range tt.stage {
				d.Stage(day, row, now)
			}

			got := d.Additions(confirmed)
			if got.Operation != roster.OpPMF || got.Month != april {
				t.Errorf("Additions header = %s %s", got.Operation, got.Month)
			}
			if len(got.Days) != len(tt.want) {
				t.Fatalf("Additions days = %v, want %v", got.Days, tt.want)
			}
			for day, row := range tt.want {
				if !reflect.DeepEqual(got.Days[day], row) {
					t.Errorf("day %d = %v, want %v", day, got.Days[day], row)
				}
			}
		})
	}
}
