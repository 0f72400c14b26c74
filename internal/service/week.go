package service

import (
	"errors"
	"time"

	"github.com/quietmind/backend/internal/models"
)

// ErrInvalidDate indicates a weekStart parameter that could not be parsed.
// A malformed anchor is a client error, never a silent fallback to "now":
// defaulting would mask a caller bug.
var ErrInvalidDate = errors.New("invalid weekStart date")

// anchorFormats are the accepted weekStart layouts, tried in order.
var anchorFormats = []string{"2006-01-02", time.RFC3339}

// WeekWindowFor resolves the Monday-to-Monday window containing the anchor.
// An empty anchor means the week containing now. The start is the anchor's
// Monday at local midnight; the end is the following Monday, exclusive.
func WeekWindowFor(anchor string, now time.Time) (models.WeekRange, error) {
	base := now
	if anchor != "" {
		parsed, err := parseAnchor(anchor)
		if err != nil {
			return models.WeekRange{}, ErrInvalidDate
		}
		base = parsed
	}

	base = base.In(time.Local)
	midnight := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.Local)

	// time.Weekday counts from Sunday; shift so Monday is day zero
	offset := (int(midnight.Weekday()) + 6) % 7

	start := midnight.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7)

	return models.WeekRange{Start: start, End: end}, nil
}

func parseAnchor(anchor string) (time.Time, error) {
	var lastErr error
	for _, layout := range anchorFormats {
		t, err := time.ParseInLocation(layout, anchor, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
