package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthFormat is the format used to represent billing cycles as strings.
const MonthFormat = "2006-01"

// Month identifies a calendar month, the billing period a subscription's
// paid status refers to. The zero Month means "no cycle".
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{t.Year(), t.Month()}
}

// MonthOf returns the Month containing d.
func MonthOf(d Date) Month { return NewMonth(d.Year(), d.Month()) }

// ThisMonth returns the current month.
func ThisMonth() Month { return MonthOf(Today()) }

// Next returns the following month.
func (m Month) Next() Month { return NewMonth(m.y, m.m+1) }

// Contains reports whether d falls within the month.
func (m Month) Contains(d Date) bool { return MonthOf(d) == m }

// IsZero reports whether m is the zero month.
func (m Month) IsZero() bool { return m == Month{} }

// String formats the month as a "YYYY-MM" cycle token.
func (m Month) String() string {
	return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC).Format(MonthFormat)
}

// ParseMonth parses a "YYYY-MM" cycle token.
func ParseMonth(str string) (Month, error) {
	t, err := time.Parse(MonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid cycle %q want format %q: %w", str, MonthFormat, err)
	}
	return NewMonth(t.Year(), t.Month()), nil
}

// UnmarshalJSON accepts a "YYYY-MM" string; empty or null means no cycle.
// An unparseable token coerces to the zero month rather than failing the
// decode.
func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil || str == "" {
		*m = Month{}
		return nil
	}
	parsed, err := ParseMonth(str)
	if err != nil {
		*m = Month{}
		return nil
	}
	*m = parsed
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return json.Marshal("")
	}
	str := m.String()
	return json.Marshal(&str)
}
