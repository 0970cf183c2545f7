package workday

import (
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return d
}

func TestCount(t *testing.T) {
	t.Run("inverted_range_is_zero", func(t *testing.T) {
		got := Count(date(t, "2024-03-10"), date(t, "2024-03-01"), nil)
		if got != 0 {
			t.Errorf("expected 0 for inverted range, got %d", got)
		}
	})

	t.Run("single_weekday", func(t *testing.T) {
		// 2024-01-08 is a Monday
		got := Count(date(t, "2024-01-08"), date(t, "2024-01-08"), nil)
		if got != 1 {
			t.Errorf("expected 1, got %d", got)
		}
	})

	t.Run("weekend_only_range_is_zero", func(t *testing.T) {
		// 2024-01-05 is a Friday, 2024-01-06 a Saturday
		got := Count(date(t, "2024-01-05"), date(t, "2024-01-06"), nil)
		if got != 0 {
			t.Errorf("expected 0 for Fri-Sat range, got %d", got)
		}
	})

	t.Run("single_holiday_weekday_is_zero", func(t *testing.T) {
		holidays := NewHolidaySet("2024-05-01")
		// 2024-05-01 is a Wednesday
		got := Count(date(t, "2024-05-01"), date(t, "2024-05-01"), holidays)
		if got != 0 {
			t.Errorf("expected 0 for holiday, got %d", got)
		}
		// Same day without the holiday registered
		got = Count(date(t, "2024-05-01"), date(t, "2024-05-01"), nil)
		if got != 1 {
			t.Errorf("expected 1 without holiday, got %d", got)
		}
	})

	t.Run("fri_sat_holiday_mon_scenario", func(t *testing.T) {
		// Coptic Christmas on Sunday 2024-01-07; range Fri 01-05 to Mon 01-08.
		// Excluded: Fri, Sat, holiday Sunday. Only Monday counts.
		holidays := NewHolidaySet("2024-01-07")
		got := Count(date(t, "2024-01-05"), date(t, "2024-01-08"), holidays)
		if got != 1 {
			t.Errorf("expected 1, got %d", got)
		}
	})

	t.Run("full_week", func(t *testing.T) {
		// Sun 2024-03-03 through Sat 2024-03-09: Sun-Thu working, Fri-Sat off.
		got := Count(date(t, "2024-03-03"), date(t, "2024-03-09"), nil)
		if got != 5 {
			t.Errorf("expected 5 working days in a full week, got %d", got)
		}
	})

	t.Run("time_of_day_is_ignored", func(t *testing.T) {
		start := time.Date(2024, 1, 8, 23, 58, 0, 0, time.UTC)
		end := time.Date(2024, 1, 8, 0, 1, 0, 0, time.UTC)
		// After truncation both are the same Monday, so the range is one day.
		got := Count(start, end, nil)
		if got != 1 {
			t.Errorf("expected 1, got %d", got)
		}
	})
}

func TestCountRange(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := CountRange("2024-01-07", "2024-01-11", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Sun 01-07 through Thu 01-11 are all working days.
		if got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
	})

	t.Run("malformed_date", func(t *testing.T) {
		if _, err := CountRange("07/01/2024", "2024-01-11", nil); err == nil {
			t.Error("expected error for malformed start date")
		}
		if _, err := CountRange("2024-01-07", "not-a-date", nil); err == nil {
			t.Error("expected error for malformed end date")
		}
	})
}

func TestIsWorkingDay(t *testing.T) {
	holidays := NewHolidaySet("2024-10-06")

	cases := []struct {
		name string
		day  string
		want bool
	}{
		{"sunday_working", "2024-10-13", true},
		{"friday_weekend", "2024-10-11", false},
		{"saturday_weekend", "2024-10-12", false},
		{"armed_forces_day_holiday", "2024-10-06", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsWorkingDay(date(t, tc.day), holidays); got != tc.want {
				t.Errorf("IsWorkingDay(%s) = %v, want %v", tc.day, got, tc.want)
			}
		})
	}
}
