package dto

import (
	"fmt"
	"time"

	"github.com/edusuite/school_finance_api/internal/apperrors"
)

// DateLayout is the wire format for all date fields.
const DateLayout = "2006-01-02"

// ParseDate parses a wire-format date. Dates are calendar days, not instants,
// so they are kept in UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return t, nil
}

// FormatDate renders a date in wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MessageResponse is a generic informational payload.
type MessageResponse struct {
	Message string `json:"message"`
}
