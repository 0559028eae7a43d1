package contas

import (
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // permissive read format (allows single-digit month/day)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// MonthFormat is the format used to represent months as strings (e.g. "2024-05").
const MonthFormat = "2006-01"

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// ParseDate parses a date in ISO-8601 form, permissive about leading zeros.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(readDateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return NewDate(d.y, d.m, d.d+days) }

// AddMonth returns a new Date with the given number of months added.
func (d Date) AddMonth(months int) Date { return NewDate(d.y, d.m+time.Month(months), d.d) }

// DaysUntil returns the number of whole days between d and x (positive when x is later).
func (d Date) DaysUntil(x Date) int {
	return int(x.time().Sub(d.time()) / (24 * time.Hour))
}

// openEnd is the date used for open-ended balance queries.
var openEnd = NewDate(9999, time.December, 31)

// MarshalJSON implements the json.Marshaler interface for Date.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month addresses a calendar month. It is the unit the obligation generator
// works with: generated bill ids embed its compact form.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns the month for the given year and month number.
func NewMonth(year int, month time.Month) Month {
	d := NewDate(year, month, 1)
	return Month{d.y, d.m}
}

// MonthOf returns the month containing the given date.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

// ParseMonth parses a month in "2006-01" form.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return NewMonth(t.Year(), t.Month()), nil
}

// String formats the month as "2006-01".
func (m Month) String() string {
	return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC).Format(MonthFormat)
}

// Compact formats the month as "200601"; this form is embedded in generated bill ids.
func (m Month) Compact() string {
	return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC).Format("200601")
}

// Contains reports whether the given date falls in the month.
func (m Month) Contains(d Date) bool { return d.y == m.y && d.m == m.m }

// First returns the first day of the month.
func (m Month) First() Date { return NewDate(m.y, m.m, 1) }

// Last returns the last day of the month.
func (m Month) Last() Date { return NewDate(m.y, m.m+1, 0) }

// Day returns the given day within the month, clamped to the month's length.
func (m Month) Day(day int) Date {
	if last := m.Last().Day(); day > last {
		day = last
	}
	return NewDate(m.y, m.m, day)
}

// Add returns the month shifted by the given number of months.
func (m Month) Add(months int) Month {
	d := NewDate(m.y, m.m+time.Month(months), 1)
	return Month{d.y, d.m}
}

// IsZero returns true if the month is the zero value.
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }
