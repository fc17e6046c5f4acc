package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name     string
		day      Date
		expected Date
	}{
		{"sunday is its own week start", NewDate(2026, time.October, 11), NewDate(2026, time.October, 11)},
		{"wednesday", NewDate(2026, time.October, 14), NewDate(2026, time.October, 11)},
		{"saturday", NewDate(2026, time.October, 17), NewDate(2026, time.October, 11)},
		{"crosses month boundary", NewDate(2026, time.October, 2), NewDate(2026, time.September, 27)},
		{"crosses year boundary", NewDate(2027, time.January, 1), NewDate(2026, time.December, 27)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.day.WeekStart(); got != tc.expected {
				t.Errorf("WeekStart(%s) = %s, expected %s", tc.day, got, tc.expected)
			}
		})
	}
}

func TestAddDaysAcrossBoundaries(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	if got := d.AddDays(1); got != NewDate(2024, time.February, 29) {
		t.Errorf("leap day: got %s", got)
	}
	if got := d.AddDays(2); got != NewDate(2024, time.March, 1) {
		t.Errorf("after leap day: got %s", got)
	}
	if got := NewDate(2026, time.January, 1).Yesterday(); got != NewDate(2025, time.December, 31) {
		t.Errorf("Yesterday across year: got %s", got)
	}
}

func TestIsNewDay(t *testing.T) {
	today := NewDate(2026, time.October, 14)

	if !IsNewDay(Date{}, today) {
		t.Error("zero last date should be a new day")
	}
	if IsNewDay(today, today) {
		t.Error("same date should not be a new day")
	}
	if !IsNewDay(today.Yesterday(), today) {
		t.Error("yesterday should be a new day")
	}
}

func TestIsConsecutive(t *testing.T) {
	today := NewDate(2026, time.October, 14)

	tests := []struct {
		name     string
		last     Date
		expected bool
	}{
		{"never checked in", Date{}, false},
		{"yesterday", today.AddDays(-1), true},
		{"two days ago", today.AddDays(-2), false},
		{"today", today, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsConsecutive(tc.last, today); got != tc.expected {
				t.Errorf("IsConsecutive(%s, %s) = %v, expected %v", tc.last, today, got, tc.expected)
			}
		})
	}
}

func TestIsNewWeek(t *testing.T) {
	wed := NewDate(2026, time.October, 14)
	anchor := wed.WeekStart()

	if IsNewWeek(anchor, wed) {
		t.Error("same week should not roll over")
	}
	if IsNewWeek(anchor, NewDate(2026, time.October, 17)) {
		t.Error("saturday of same week should not roll over")
	}
	if !IsNewWeek(anchor, NewDate(2026, time.October, 18)) {
		t.Error("next sunday should roll over")
	}
	if !IsNewWeek(Date{}, wed) {
		t.Error("missing anchor should roll over")
	}
}

func TestDateBefore(t *testing.T) {
	a := NewDate(2026, time.March, 5)
	b := NewDate(2026, time.March, 6)
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("Before ordering is wrong")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.October, 4)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2026-10-04"` {
		t.Errorf("Marshal = %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal = %s, expected %s", back, d)
	}

	var empty Date
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil || !empty.IsZero() {
		t.Errorf("empty string should decode to zero date, got %v (%v)", empty, err)
	}

	if err := json.Unmarshal([]byte(`"not a date"`), &empty); err == nil {
		t.Error("garbage should fail to decode")
	}
}

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(NewDate(2026, time.October, 14), 23)
	if Today(c) != NewDate(2026, time.October, 14) {
		t.Errorf("Today = %s", Today(c))
	}
	c.Advance(2 * time.Hour)
	if Today(c) != NewDate(2026, time.October, 15) {
		t.Errorf("after advancing past midnight Today = %s", Today(c))
	}
	c.AdvanceDays(3)
	if Today(c) != NewDate(2026, time.October, 18) {
		t.Errorf("after AdvanceDays Today = %s", Today(c))
	}
}
