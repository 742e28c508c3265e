package model

import (
	"fmt"
	"time"
)

// Date layouts. DateLayout is the storage/API form, DisplayDateLayout the
// form shown in exported sheets and tables.
const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02-Jan-2006"
	DisplayTimeLayout = "02-Jan-2006 15:04"
)

// ParseDate parses a yyyy-mm-dd string as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
	}
	return t, nil
}

// FormatDisplayDate renders a date for humans; the zero time renders empty.
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
