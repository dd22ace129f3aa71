package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical, zero-padded form of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes out-of-range values the way time.Date does,
// so NewDate(2024, 3, 0) is the last day of February.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the day t falls on in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate accepts YYYY-MM-DD and its unpadded variants (2024-3-5).
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}

	var nums [3]int
	for i, p := range parts {
		if p == "" || strings.HasPrefix(p, "+") {
			return Date{}, fmt.Errorf("invalid date %q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Date{}, fmt.Errorf("invalid date %q", s)
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if year < 1 || year > 9999 {
		return Date{}, fmt.Errorf("invalid date %q: year out of range", s)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("invalid date %q: month out of range", s)
	}
	if day < 1 || day > DaysIn(year, time.Month(month)) {
		return Date{}, fmt.Errorf("invalid date %q: day out of range", s)
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
