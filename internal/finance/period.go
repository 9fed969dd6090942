package finance

import (
	"fmt"
	"time"

	apperrors "ledgerly/internal/errors"
)

// Period selects the dashboard window.
type Period string

const (
	PeriodWeek     Period = "week"
	PeriodBiweekly Period = "biweekly"
	PeriodMonth    Period = "month"
)

// Window is an inclusive time range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies in [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ParsePeriod validates a period selector value.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodBiweekly, PeriodMonth:
		return p, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidPeriod, fmt.Sprintf("unknown period %q", s))
}

// ResolveWindow computes the window for period as seen at now.
//
// week and biweekly are rolling windows ending at now (7 and 15 calendar
// days back). month is the whole calendar month containing now, not a
// rolling 30 days.
func ResolveWindow(period Period, now time.Time) (Window, error) {
	switch period {
	case PeriodWeek:
		return Window{Start: now.AddDate(0, 0, -7), End: now}, nil
	case PeriodBiweekly:
		return Window{Start: now.AddDate(0, 0, -15), End: now}, nil
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
		return Window{Start: start, End: end}, nil
	}
	return Window{}, apperrors.WithMessage(apperrors.ErrInvalidPeriod, fmt.Sprintf("unknown period %q", period))
}

// InPeriod reports whether date falls inside the window resolved for now.
func InPeriod(date time.Time, period Period, now time.Time) (bool, error) {
	w, err := ResolveWindow(period, now)
	if err != nil {
		return false, err
	}
	return w.Contains(date), nil
}
