package contas

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-05-10", NewDate(2024, time.May, 10), true},
		{"2024-5-1", NewDate(2024, time.May, 1), true},
		{"10/05/2024", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseDate(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseDate(%q) should fail", tc.in)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-02-29"` {
		t.Errorf("marshaled %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip %v != %v", back, d)
	}
}

func TestMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	if err != nil {
		t.Fatal(err)
	}
	if m.Compact() != "202402" {
		t.Errorf("Compact = %q", m.Compact())
	}
	if !m.Contains(NewDate(2024, time.February, 29)) {
		t.Error("leap day not contained in its month")
	}
	if m.Contains(NewDate(2024, time.March, 1)) {
		t.Error("March day contained in February")
	}
	if got := m.Last(); got != NewDate(2024, time.February, 29) {
		t.Errorf("Last = %s", got)
	}
	// Day clamps past the end of the month.
	if got := m.Day(31); got != NewDate(2024, time.February, 29) {
		t.Errorf("Day(31) = %s, want clamped to Feb 29", got)
	}
	if got := m.Add(11); got != NewMonth(2025, time.January) {
		t.Errorf("Add(11) = %s", got)
	}
	if got := m.Add(-2); got != NewMonth(2023, time.December) {
		t.Errorf("Add(-2) = %s", got)
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.January, 31)
	// Month arithmetic normalizes like time.Date does.
	if got := d.AddMonth(1); got != NewDate(2024, time.March, 2) {
		t.Errorf("AddMonth(1) from Jan 31 = %s", got)
	}
	if got := NewDate(2024, time.February, 1).DaysUntil(NewDate(2025, time.January, 31)); got != 365 {
		t.Errorf("DaysUntil = %d, want 365", got)
	}
	if got := NewDate(2024, time.May, 11).DaysUntil(NewDate(2024, time.May, 10)); got != -1 {
		t.Errorf("negative DaysUntil = %d, want -1", got)
	}
}
