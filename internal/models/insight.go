package models

import "time"

// WeekRange is a Monday-to-Monday window. End is exclusive.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// WeekRangeJSON is the wire form of a WeekRange, ISO-8601 timestamps.
type WeekRangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// JSON formats both bounds as RFC 3339.
func (r WeekRange) JSON() WeekRangeJSON {
	return WeekRangeJSON{
		Start: r.Start.Format(time.RFC3339),
		End:   r.End.Format(time.RFC3339),
	}
}

// WeeklySummary is the response for the weekly-summary endpoint.
type WeeklySummary struct {
	Range     WeekRangeJSON  `json:"range"`
	Total     int            `json:"total"`
	Breakdown map[string]int `json:"breakdown"`
}

// Reflection is the AI-generated portion of a weekly insight.
type Reflection struct {
	Insight string `json:"insight"`
	TryThis string `json:"tryThis"`
}

// WeeklyInsight is the response for the weekly-insight endpoint.
type WeeklyInsight struct {
	Range     WeekRangeJSON  `json:"range"`
	Total     int            `json:"total"`
	Breakdown map[string]int `json:"breakdown"`
	Insight   string         `json:"insight"`
	TryThis   string         `json:"tryThis"`
}
