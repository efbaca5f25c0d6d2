// Package caldate holds the calendar-date type used across the core and the
// DD/MM/YYYY text form it takes in the persisted collections.
package caldate

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Layout is the storage and display form of a Date.
const Layout = "02/01/2006"

// ErrInvalidDate is returned when a string is not a real DD/MM/YYYY date.
var ErrInvalidDate = errors.New("invalid date, expected DD/MM/YYYY")

// Date is a calendar day without time-of-day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New builds a Date, normalising overflowing days and months
// (New(2024, 1, 32) is 01/02/2024).
func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// Of returns the calendar date of t in t's own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today is the calendar date of now in now's location.
func Today(now time.Time) Date {
	return Of(now)
}

// Parse reads a DD/MM/YYYY string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Of(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String formats d as DD/MM/YYYY, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// AddDays moves d by n whole calendar days.
func (d Date) AddDays(n int) Date {
	return New(d.Year, d.Month, d.Day+n)
}

// At returns hour:00 on d in loc.
func (d Date) At(hour int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, hour, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// MarshalJSON writes d in its storage form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the storage form; "" yields the zero Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
