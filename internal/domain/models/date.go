package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DateLayout is the canonical on-disk and on-wire representation of a Date.
	DateLayout = "2006-01-02"

	// readDateLayout also accepts single-digit month and day, e.g. 2024-1-5.
	readDateLayout = "2006-1-2"
)

// Date is a calendar day with no time component.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date; out-of-range days roll over like time.Date.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t.Year(), t.Month(), t.Day()}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// Today returns the current local date.
func Today() Date { return DateOf(time.Now()) }

// ParseDate parses YYYY-MM-DD (single-digit month and day are tolerated).
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(readDateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %s: %w", value, DateLayout, err)
	}
	return DateOf(t), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of d.
func (d Date) Year() int { return d.y }

// Month returns the month of d.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month of d.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Between reports whether start <= d <= end.
func (d Date) Between(start, end Date) bool { return !d.Before(start) && !d.After(end) }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date { return NewDate(d.y, d.m, d.d+n) }

// String formats d as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(DateLayout) }

// Compact formats d as YYYYMMDD.
func (d Date) Compact() string { return d.time().Format("20060102") }

// MarshalJSON encodes d as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
)
