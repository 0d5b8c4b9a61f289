package domain

import (
	"fmt"
	"time"
)

// Payroll is one salary record for an employee and period. Salary is stored
// in cents. (Employee, Period) is unique.
type Payroll struct {
	ID          int64
	Employee    string
	Period      time.Time
	SalaryCents int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const periodWireFormat = "01-2006"

// ParsePeriod parses the wire period format "mm-YYYY" into the first day of
// that month.
func ParsePeriod(raw string) (time.Time, error) {
	period, err := time.Parse(periodWireFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("period must be formatted mm-YYYY: %w", err)
	}
	return period, nil
}

// FormatPeriod renders a period as "Month-YYYY" for employee-facing output.
func FormatPeriod(period time.Time) string {
	return period.Format("January-2006")
}

// FormatSalary renders cents as "X dollar(s), Y cent(s)".
func FormatSalary(cents int64) string {
	return fmt.Sprintf("%d dollar(s), %d cent(s)", cents/100, cents%100)
}
