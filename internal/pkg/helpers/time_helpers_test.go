package helpers

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	noon := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)
	start, end := DayBounds(noon)

	if !start.Equal(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected day start: %v", start)
	}
	if !end.Equal(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected day end: %v", end)
	}
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	if got := DaysAgo(now, 7); !got.Equal(time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("DaysAgo(7) = %v", got)
	}
	if got := DaysAgo(now, 0); !got.Equal(now) {
		t.Errorf("DaysAgo(0) should be identity, got %v", got)
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("5s", time.Minute); got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}
	if got := ParseDuration("bogus", time.Minute); got != time.Minute {
		t.Errorf("expected fallback to default, got %v", got)
	}
}
