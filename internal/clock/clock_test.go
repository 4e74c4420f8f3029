package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	c := &RealClock{}
	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("RealClock.Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2025, time.April, 30, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		step func(c *FakeClock)
		want time.Time
	}{
		{
			name: "fixed until changed",
			step: func(c *FakeClock) {},
			want: start,
		},
		{
			name: "advance crosses into next month",
			step: func(c *FakeClock) { c.Advance(2 * time.Hour) },
			want: time.Date(2025, time.May, 1, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "set moves backwards",
			step: func(c *FakeClock) { c.Set(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)) },
			want: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "advances accumulate",
			step: func(c *FakeClock) {
				c.Advance(time.Hour)
				c.Advance(-30 * time.Minute)
			},
			want: start.Add(30 * time.Minute),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFakeClock(start)
			tt.step(c)
			if got := c.Now(); !got.Equal(tt.want) {
				t.Errorf("Now() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFakeClock_Independent(t *testing.T) {
	a := NewFakeClock(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	b := NewFakeClock(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	a.Advance(24 * time.Hour)
	if a.Now().Equal(b.Now()) {
		t.Error("advancing one FakeClock should not affect another")
	}
}
