package service

import (
	"errors"
	"testing"
	"time"
)

func TestWeekWindowForSpansExactlySevenDays(t *testing.T) {
	anchors := []string{
		"2024-01-01", // a Monday
		"2024-03-06", // a Wednesday
		"2024-03-10", // a Sunday
		"2024-02-29", // leap day
		"2024-12-31",
	}

	for _, anchor := range anchors {
		t.Run(anchor, func(t *testing.T) {
			window, err := WeekWindowFor(anchor, time.Now())
			if err != nil {
				t.Fatalf("WeekWindowFor(%q) returned error: %v", anchor, err)
			}

			if got := window.Start.AddDate(0, 0, 7); !got.Equal(window.End) {
				t.Errorf("end = %v, want start+7d = %v", window.End, got)
			}
		})
	}
}

func TestWeekWindowForStartIsMondayMidnightContainingAnchor(t *testing.T) {
	anchors := []string{
		"2024-01-01",
		"2024-03-04",
		"2024-03-05",
		"2024-03-06",
		"2024-03-09",
		"2024-03-10",
	}

	for _, anchor := range anchors {
		t.Run(anchor, func(t *testing.T) {
			window, err := WeekWindowFor(anchor, time.Now())
			if err != nil {
				t.Fatalf("WeekWindowFor(%q) returned error: %v", anchor, err)
			}

			if window.Start.Weekday() != time.Monday {
				t.Errorf("start weekday = %v, want Monday", window.Start.Weekday())
			}
			h, m, s := window.Start.Clock()
			if h != 0 || m != 0 || s != 0 {
				t.Errorf("start is not at midnight: %v", window.Start)
			}

			day, _ := time.ParseInLocation("2006-01-02", anchor, time.Local)
			if day.Before(window.Start) || !day.Before(window.End) {
				t.Errorf("anchor %v not contained in [%v, %v)", day, window.Start, window.End)
			}
		})
	}
}

func TestWeekWindowForMondayAnchorStartsAtAnchor(t *testing.T) {
	window, err := WeekWindowFor("2024-03-04", time.Now())
	if err != nil {
		t.Fatalf("WeekWindowFor returned error: %v", err)
	}

	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	if !window.Start.Equal(want) {
		t.Errorf("start = %v, want %v", window.Start, want)
	}
}

func TestWeekWindowForEmptyAnchorUsesNow(t *testing.T) {
	now := time.Date(2024, 3, 6, 15, 42, 7, 0, time.Local) // a Wednesday

	window, err := WeekWindowFor("", now)
	if err != nil {
		t.Fatalf("WeekWindowFor returned error: %v", err)
	}

	wantStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	if !window.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", window.Start, wantStart)
	}
	if now.Before(window.Start) || !now.Before(window.End) {
		t.Errorf("now %v not contained in [%v, %v)", now, window.Start, window.End)
	}
}

func TestWeekWindowForInvalidAnchor(t *testing.T) {
	invalid := []string{"not-a-date", "2024-13-40", "tomorrow", "03/06/2024"}

	for _, anchor := range invalid {
		t.Run(anchor, func(t *testing.T) {
			_, err := WeekWindowFor(anchor, time.Now())
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("WeekWindowFor(%q) error = %v, want ErrInvalidDate", anchor, err)
			}
		})
	}
}

func TestWeekWindowForAcceptsRFC3339Anchor(t *testing.T) {
	window, err := WeekWindowFor("2024-03-06T18:30:00Z", time.Now())
	if err != nil {
		t.Fatalf("WeekWindowFor returned error: %v", err)
	}
	if window.Start.Weekday() != time.Monday {
		t.Errorf("start weekday = %v, want Monday", window.Start.Weekday())
	}
}
