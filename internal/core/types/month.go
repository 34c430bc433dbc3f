package types

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month as "YYYY-MM".
// Monthly costs are keyed by it and revenue reports enumerate keys over
// a date range.
type MonthKey string

const monthKeyLayout = "2006-01"

// MonthKeyOf returns the key for the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthKeyLayout))
}

// ParseMonthKey validates and parses a "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse month key %q: %w", s, err)
	}
	return MonthKeyOf(t), nil
}

// Time returns midnight UTC on the first day of the month.
func (k MonthKey) Time() (time.Time, error) {
	return time.Parse(monthKeyLayout, string(k))
}

func (k MonthKey) String() string { return string(k) }

// IsValid reports whether the key is a well-formed "YYYY-MM".
func (k MonthKey) IsValid() bool {
	_, err := time.Parse(monthKeyLayout, string(k))
	return err == nil
}

// MonthKeysInRange enumerates every calendar month whose key falls inside
// [start, end] inclusive.
//
// Both bounds are normalized to the first of their month before
// incrementing. Naive AddDate on the original day-of-month overflows at
// month end: Jan 31 + one month lands on Mar 3 and skips February.
func MonthKeysInRange(start, end time.Time) []MonthKey {
	if end.Before(start) {
		return nil
	}

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var keys []MonthKey
	for cur := first; !cur.After(last); cur = cur.AddDate(0, 1, 0) {
		keys = append(keys, MonthKeyOf(cur))
	}
	return keys
}
