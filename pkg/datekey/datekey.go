// Package datekey formats and parses the day-month-year strings used as
// document keys throughout the system. The format is "D-M-YYYY" with no
// leading zeros ("5-3-2025" for March 5, 2025). Dates in this format are
// compared by exact string equality, so a zero-padded variant is a different,
// wrong key.
package datekey

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format renders t's calendar date as an unpadded D-M-YYYY key.
func Format(t time.Time) string {
	return strconv.Itoa(t.Day()) + "-" + strconv.Itoa(int(t.Month())) + "-" + strconv.Itoa(t.Year())
}

// Parse recovers the calendar date from a D-M-YYYY key. Padded components
// ("05-03-2025") are accepted on input; Format never produces them.
func Parse(key string) (time.Time, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("date key %q: want D-M-YYYY", key)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("date key %q: bad day: %w", key, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("date key %q: bad month: %w", key, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("date key %q: bad year: %w", key, err)
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("date key %q: out of range", key)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("date key %q: no such date", key)
	}
	return t, nil
}

// NormalizeHour maps legacy hour values onto the 0-23 range. Some historical
// writers recorded 24 meaning midnight of the same displayed date; that value
// becomes 0 without shifting the date. Anything else out of range is an error.
func NormalizeHour(hour int) (int, error) {
	if hour == 24 {
		return 0, nil
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour %d out of range", hour)
	}
	return hour, nil
}
