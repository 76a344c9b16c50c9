package core

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat is the canonical wire format for dates.
const DateFormat = "2006-01-02"

// YearMonthFormat is the canonical wire format for calendar months.
const YearMonthFormat = "2006-01"

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidYearMonth = errors.New("invalid year-month")
)

// Date is a calendar day with no time-of-day component.
// It marshals as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in UTC.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a strict "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// MustParseDate is like ParseDate but panics on error. Intended for seed data and tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) String() string {
	return d.Time.Format(DateFormat)
}

// YearMonth returns the calendar month containing the date.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Time.Year(), Month: d.Time.Month()}
}

func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }

// AddMonths returns the date shifted by n calendar months.
func (d Date) AddMonths(n int) Date {
	t := d.Time.AddDate(0, n, 0)
	return Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `null` || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthsBetween returns the calendar-month distance from a to b.
// Days within the month are ignored; February to April is 2 regardless of day.
func MonthsBetween(a, b Date) int {
	return (b.Time.Year()-a.Time.Year())*12 + int(b.Time.Month()) - int(a.Time.Month())
}

// YearMonth identifies a calendar month. It marshals as "YYYY-MM".
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth creates a normalized YearMonth.
func NewYearMonth(year, month int) YearMonth {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// CurrentYearMonth returns the current calendar month in UTC.
func CurrentYearMonth() YearMonth {
	now := time.Now().UTC()
	return YearMonth{Year: now.Year(), Month: now.Month()}
}

// ParseYearMonth parses a strict "YYYY-MM" string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(YearMonthFormat, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// MustParseYearMonth is like ParseYearMonth but panics on error.
func MustParseYearMonth(s string) YearMonth {
	ym, err := ParseYearMonth(s)
	if err != nil {
		panic(err.Error())
	}
	return ym
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Index returns a monotonically increasing ordinal for month arithmetic.
func (ym YearMonth) Index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// Before reports whether ym precedes other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Index() < other.Index()
}

// AddMonths returns the month shifted by n.
func (ym YearMonth) AddMonths(n int) YearMonth {
	return NewYearMonth(ym.Year, int(ym.Month)+n)
}

func (ym YearMonth) MarshalJSON() ([]byte, error) {
	if ym.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ym.String() + `"`), nil
}

func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `null` || s == `""` {
		*ym = YearMonth{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidYearMonth, s)
	}
	parsed, err := ParseYearMonth(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}
