package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	orig := Now
	Now = func() time.Time { return now }
	t.Cleanup(func() { Now = orig })
}

func TestKeysAgree(t *testing.T) {
	tests := []struct {
		in    time.Time
		day   string
		month string
	}{
		{date(2024, 3, 15), "2024-03-15", "2024-03"},
		{date(2024, 1, 1), "2024-01-01", "2024-01"},
		{date(2023, 12, 31), "2023-12-31", "2023-12"},
		{time.Date(2023, 12, 31, 23, 59, 0, 0, time.FixedZone("east", 14*3600)), "2023-12-31", "2023-12"},
		{time.Date(2024, 1, 1, 0, 30, 0, 0, time.FixedZone("west", -12*3600)), "2024-01-01", "2024-01"},
	}

	for _, tt := range tests {
		if got := DayKey(tt.in); got != tt.day {
			t.Errorf("DayKey(%v): expected %q, got %q", tt.in, tt.day, got)
		}
		if got := MonthKey(tt.in); got != tt.month {
			t.Errorf("MonthKey(%v): expected %q, got %q", tt.in, tt.month, got)
		}
		if DayKey(tt.in)[:7] != MonthKey(tt.in) {
			t.Errorf("day key %q does not belong to month key %q", DayKey(tt.in), MonthKey(tt.in))
		}
	}
}

func TestMonthKeyFor(t *testing.T) {
	if got := MonthKeyFor(2024, time.March); got != "2024-03" {
		t.Errorf("expected 2024-03, got %q", got)
	}
}

func TestIsToday(t *testing.T) {
	fixClock(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local))

	if !IsToday(date(2024, 3, 15)) {
		t.Error("expected 2024-03-15 to be today")
	}
	if IsToday(date(2024, 3, 14)) {
		t.Error("expected 2024-03-14 not to be today")
	}
}

func TestIsSameMonth(t *testing.T) {
	if !IsSameMonth(date(2024, 2, 1), date(2024, 2, 29)) {
		t.Error("expected same month")
	}
	if IsSameMonth(date(2024, 2, 1), date(2023, 2, 1)) {
		t.Error("expected different years to differ")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.expected {
			t.Errorf("DaysInMonth(%d, %s): expected %d, got %d", tt.year, tt.month, tt.expected, got)
		}
	}
}

func TestParseDay(t *testing.T) {
	fixClock(t, time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local))

	tests := []struct {
		input    string
		expected string
	}{
		{"2024-03-01", "2024-03-01"},
		{"today", "2024-03-15"},
		{"Yesterday", "2024-03-14"},
		{"tomorrow", "2024-03-16"},
		{"+20", "2024-04-04"},
		{"-15", "2024-02-29"},
		{"12-25", "2024-12-25"},
	}

	for _, tt := range tests {
		got, err := ParseDay(tt.input)
		if err != nil {
			t.Errorf("ParseDay(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if DayKey(got) != tt.expected {
			t.Errorf("ParseDay(%q): expected %s, got %s", tt.input, tt.expected, DayKey(got))
		}
	}

	for _, bad := range []string{"", "soon", "2024-13-01", "+x"} {
		if _, err := ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q): expected error", bad)
		}
	}
}

func TestParseDayLeapDayShortForm(t *testing.T) {
	fixClock(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local))

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"02-29", true},
		{"2025-02-29", true},
		{"02-28", false},
		{"03-01", false},
	}

	for _, tt := range tests {
		got, err := ParseDay(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDay(%q): expected error, got %s", tt.input, DayKey(got))
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDay(%q): unexpected error: %v", tt.input, err)
		}
	}

	fixClock(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local))
	got, err := ParseDay("02-29")
	if err != nil || DayKey(got) != "2024-02-29" {
		t.Errorf("ParseDay(02-29) in a leap year: got %s, %v", DayKey(got), err)
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2024-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2024 || month != time.March {
		t.Errorf("expected 2024 March, got %d %s", year, month)
	}

	if _, _, err := ParseMonth("March"); err == nil {
		t.Error("expected error for non-key month")
	}
}

func TestFormatDisplay(t *testing.T) {
	if got := FormatDisplay(date(2024, 3, 5)); got != "05/03/2024" {
		t.Errorf("expected 05/03/2024, got %q", got)
	}
}
