package period

import (
	"fmt"
	"time"
)

const layout = "2006-01"

// Month is a calendar month in UTC, used as the pay and reporting period.
type Month struct {
	Year  int
	Month time.Month
}

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Parse parses YYYY-MM.
func Parse(s string) (Month, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid period %q, expected YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// ParseOrCurrent parses YYYY-MM, defaults to the month containing now when s is empty.
func ParseOrCurrent(s string, now time.Time) (Month, error) {
	if s == "" {
		return Of(now), nil
	}
	return Parse(s)
}

// Of returns the month containing t.
func Of(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero reports whether m is the zero month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// FirstDay returns midnight UTC on the first day of the month.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns midnight UTC on the last day of the month.
func (m Month) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

// Window covers every instant from the first day through the end of the last day.
func (m Month) Window() Window {
	from := m.FirstDay()
	return Window{From: from, To: from.AddDate(0, 1, 0)}
}

// Previous returns the month before m.
func (m Month) Previous() Month {
	return Of(m.FirstDay().AddDate(0, -1, 0))
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// MarshalText encodes the month as YYYY-MM.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes YYYY-MM.
func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
