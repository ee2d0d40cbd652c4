package fiscal_test

import (
	"testing"
	"time"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/utils/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartYear(t *testing.T) {
	year, err := fiscal.StartYear("24-25")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)

	year, err = fiscal.StartYear("09-10")
	require.NoError(t, err)
	assert.Equal(t, 2009, year)

	_, err = fiscal.StartYear("2024-25")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = fiscal.StartYear("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPeriod_Yearly(t *testing.T) {
	start, end, err := fiscal.Period("24-25", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriod_Monthly(t *testing.T) {
	month := 7
	start, end, err := fiscal.Period("24-25", &month)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriod_December_RollsIntoNextYear(t *testing.T) {
	month := 12
	start, end, err := fiscal.Period("24-25", &month)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriod_InvalidMonth(t *testing.T) {
	month := 13
	_, _, err := fiscal.Period("24-25", &month)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMonthPeriod(t *testing.T) {
	start, end, err := fiscal.MonthPeriod(2024, 5)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = fiscal.MonthPeriod(2024, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
