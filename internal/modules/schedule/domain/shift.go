package domain

import "time"

// ClientRef is the resolved owning client attached to a shift during
// enrichment. It is a typed field, not a runtime property bolted on.
type ClientRef struct {
	ID    int64
	Name  string
	Email string
}

// Shift is one scheduled block of work. Start and End carry their real
// timezone from parse time; no fixed hour offset is ever applied.
type Shift struct {
	ID          int64
	ClientID    int64
	Start       time.Time
	End         time.Time
	Description string

	// Client is nil until enrichment resolves it. Aggregation operations
	// never return a shift with Client still nil.
	Client *ClientRef
}

const dayKeyLayout = "2006-01-02"

// Day returns the calendar-day grouping key for the shift.
func (s Shift) Day() string {
	return s.Start.Format(dayKeyLayout)
}

// Hours is the shift length in fractional hours.
func (s Shift) Hours() float64 {
	return s.End.Sub(s.Start).Hours()
}

func (s Shift) FormattedStart() string {
	return s.Start.Format("Mon 02 Jan 15:04")
}

func (s Shift) FormattedEnd() string {
	if s.End.Format(dayKeyLayout) == s.Start.Format(dayKeyLayout) {
		return s.End.Format("15:04")
	}
	return s.End.Format("Mon 02 Jan 15:04")
}
