// Package valueobject contains domain value objects for the Billing Panel system.
package valueobject

import (
	"fmt"
	"time"
)

// Period is a calendar billing month.
type Period struct {
	Year  int
	Month int
}

// NewPeriod validates and builds a Period.
func NewPeriod(year, month int) (Period, error) {
	p := Period{Year: year, Month: month}
	if !p.IsValid() {
		return Period{}, fmt.Errorf("period %d-%d out of range", year, month)
	}
	return p, nil
}

// PeriodOf returns the billing period containing t.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// IsValid reports whether month is 1..12 and year is a plausible calendar year.
func (p Period) IsValid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= 2000 && p.Year <= 9999
}

// String renders the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Start returns midnight UTC of the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following period.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}
