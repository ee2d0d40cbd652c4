// Package fiscal computes the date ranges financial records are aggregated
// over. The school's financial year runs April 1 to March 31 and is labeled
// "YY-YY", e.g. "24-25" for Apr 2024 - Mar 2025.
package fiscal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/edusuite/school_finance_api/internal/apperrors"
)

// fyStartMonth is the first month of the financial year.
const fyStartMonth = time.April

var labelPattern = regexp.MustCompile(`^\d{2}-\d{2}$`)

// ValidLabel reports whether label is a well-formed "YY-YY" financial year.
func ValidLabel(label string) bool {
	return labelPattern.MatchString(label)
}

// StartYear resolves a "YY-YY" label to its full start year by prefixing the
// century, so "24-25" resolves to 2024. The fixed "20" prefix is an
// intentional business rule.
func StartYear(label string) (int, error) {
	if !ValidLabel(label) {
		return 0, fmt.Errorf("%w: financial year must be in YY-YY format, got %q", apperrors.ErrValidation, label)
	}
	yy, err := strconv.Atoi(label[:2])
	if err != nil {
		return 0, fmt.Errorf("%w: financial year %q: %v", apperrors.ErrValidation, label, err)
	}
	return 2000 + yy, nil
}

// Period returns the half-open [start, end) date range a budget covers.
// A nil month denotes the whole financial year, April 1 of the start year to
// April 1 of the following year. A month value denotes the calendar month of
// the label's start year.
func Period(label string, month *int) (time.Time, time.Time, error) {
	startYear, err := StartYear(label)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if month == nil {
		start := time.Date(startYear, fyStartMonth, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), nil
	}

	m := *month
	if m < 1 || m > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be 1-12, got %d", apperrors.ErrValidation, m)
	}
	start := time.Date(startYear, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// MonthPeriod returns the half-open [start, end) range of a calendar month.
func MonthPeriod(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be 1-12, got %d", apperrors.ErrValidation, month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}
