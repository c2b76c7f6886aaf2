package clock

import (
	"testing"
	"time"
)

func TestSystemTodayIsMidnight(t *testing.T) {
	today := System{}.Today()
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 || today.Nanosecond() != 0 {
		t.Errorf("Today() = %v, want midnight", today)
	}
}

func TestAtTruncates(t *testing.T) {
	moment := time.Date(2026, time.March, 10, 15, 4, 5, 6, time.UTC)

	fixed := At(moment)

	want := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !fixed.Today().Equal(want) {
		t.Errorf("At(%v).Today() = %v, want %v", moment, fixed.Today(), want)
	}
}
