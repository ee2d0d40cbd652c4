package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus is the approval state of a budget allocation.
type BudgetStatus string

const (
	BudgetDraft    BudgetStatus = "DRAFT"
	BudgetPending  BudgetStatus = "PENDING"
	BudgetApproved BudgetStatus = "APPROVED"
	BudgetRejected BudgetStatus = "REJECTED"
	BudgetLocked   BudgetStatus = "LOCKED"
)

// Budget is a planned spending ceiling for a department in a financial year,
// optionally narrowed to a single month. A nil month denotes a yearly budget,
// distinct from any monthly budget in the same year. Once LOCKED no field may
// change.
type Budget struct {
	BudgetID        string          `json:"id"`
	DepartmentID    string          `json:"department"`
	FinancialYear   string          `json:"financial_year"` // "YY-YY", e.g. "24-25"
	Month           *int            `json:"month,omitempty"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	Status          BudgetStatus    `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	AuditFields
}

// Remaining returns the unspent part of the allocation.
func (b Budget) Remaining(spent decimal.Decimal) decimal.Decimal {
	return b.AllocatedAmount.Sub(spent)
}

// Utilization returns spend as a percentage of the allocation, rounded to two
// decimal places. Zero when nothing was allocated, for any spent value.
func (b Budget) Utilization(spent decimal.Decimal) decimal.Decimal {
	if b.AllocatedAmount.IsZero() {
		return decimal.Zero
	}
	return spent.Div(b.AllocatedAmount).Mul(decimal.NewFromInt(100)).Round(2)
}
