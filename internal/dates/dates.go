package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// Now is the clock used by IsToday and the relative forms of ParseDay.
var Now = time.Now

// DayKey returns the canonical YYYY-MM-DD key for t.
// The key is built from t's own calendar fields so it always agrees with MonthKey.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// MonthKey returns the canonical YYYY-MM key for t.
func MonthKey(t time.Time) string {
	return MonthKeyFor(t.Year(), t.Month())
}

// MonthKeyFor returns the YYYY-MM key for a year and month.
func MonthKeyFor(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// IsToday reports whether t falls on the current local date.
func IsToday(t time.Time) bool {
	return IsSameDay(t, Now())
}

// IsSameMonth reports whether a and b share year and month.
func IsSameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// IsSameDay reports whether a and b share year, month and day.
func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth returns midnight on the first day of t's month, in t's location.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDay parses a day given as YYYY-MM-DD, MM-DD (current year), a keyword
// (today, yesterday, tomorrow) or a relative offset in days (+3, -2).
func ParseDay(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	today := Midnight(Now())

	switch strings.ToLower(input) {
	case "":
		return time.Time{}, fmt.Errorf("empty date")
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if strings.HasPrefix(input, "+") || strings.HasPrefix(input, "-") {
		days, err := strconv.Atoi(input)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid relative date %q", input)
		}
		return today.AddDate(0, 0, days), nil
	}

	if parsed, err := time.ParseInLocation(DayLayout, input, time.Local); err == nil {
		return parsed, nil
	}

	if parsed, err := time.Parse("01-02", input); err == nil {
		d := time.Date(today.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local)
		// 02-29 parses in year 0 but does not exist in every year.
		if d.Month() != parsed.Month() || d.Day() != parsed.Day() {
			return time.Time{}, fmt.Errorf("invalid date %q in %d", input, today.Year())
		}
		return d, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q, use yyyy-MM-dd", input)
}

// ParseMonth parses a YYYY-MM month key.
func ParseMonth(input string) (int, time.Month, error) {
	parsed, err := time.Parse(MonthLayout, strings.TrimSpace(input))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, use yyyy-MM", input)
	}
	return parsed.Year(), parsed.Month(), nil
}

// FormatDisplay renders t as DD/MM/YYYY.
func FormatDisplay(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}
