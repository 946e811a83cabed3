package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the value format of HTML date inputs
const DateLayout = "2006-01-02"

// ParseDate parses "YYYY-MM-DD". A trailing time-of-day ("T10:30") is
// ignored so that comparisons are by calendar date only.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// DateBefore reports whether a is strictly earlier than b.
// Unparseable values never compare as before.
func DateBefore(a, b string) bool {
	ad, err := ParseDate(a)
	if err != nil {
		return false
	}
	bd, err := ParseDate(b)
	if err != nil {
		return false
	}
	return ad.Before(bd)
}

// MinDate returns the earliest selectable trip date: today, in now's location
func MinDate(now time.Time) string {
	return now.Format(DateLayout)
}

// CheckDateInput reports whether value is a calendar date on or after
// earliest. An empty earliest only checks the format.
func CheckDateInput(value, earliest string) error {
	d, err := ParseDate(value)
	if err != nil {
		return errors.New(MsgInvalidDate)
	}
	if earliest == "" {
		return nil
	}
	m, err := ParseDate(earliest)
	if err != nil {
		return fmt.Errorf("min date: %w", err)
	}
	if d.Before(m) {
		return errors.New(MsgPastDate)
	}
	return nil
}
