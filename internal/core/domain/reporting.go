package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NameTotal is a single breakdown row: a display name and a summed amount.
type NameTotal struct {
	Name  string
	Total decimal.Decimal
}

// CategoryTotal is a breakdown row for expense categories, retaining the
// category type alongside the summed amount.
type CategoryTotal struct {
	Name         string
	CategoryType CategoryType
	Total        decimal.Decimal
}

// DepartmentFinancial is one department's income and paid-expense totals over
// a date range.
type DepartmentFinancial struct {
	DepartmentName string
	Income         decimal.Decimal
	Expenses       decimal.Decimal
}

// AuditLine is one line item of the audit export.
type AuditLine struct {
	Kind   string // INCOME or EXPENSE
	Label  string // income source or expense category name
	Amount decimal.Decimal
	Date   time.Time
	Status string // RECEIVED for incomes, the expense status otherwise
}
