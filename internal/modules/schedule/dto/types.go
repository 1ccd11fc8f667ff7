package dto

import "time"

type ShiftOutput struct {
	ID             int64
	ClientID       int64
	ClientName     string
	ClientEmail    string
	Description    string
	Start          time.Time
	End            time.Time
	FormattedStart string
	FormattedEnd   string
	Hours          float64
	Day            string
}

// CalendarOutput maps calendar days to that day's shifts. Within a day,
// order is enrichment-completion order; callers must not assume
// chronological order. Days lists the keys sorted ascending for rendering.
type CalendarOutput struct {
	ByDay     map[string][]ShiftOutput
	Days      []string
	FromCache bool
}
