package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode is how money changed hands.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "CASH"
	PaymentUPI    PaymentMode = "UPI"
	PaymentBank   PaymentMode = "BANK"
	PaymentCheque PaymentMode = "CHEQUE"
	PaymentCard   PaymentMode = "CARD"
)

// IncomeSource is a category under which incomes are recorded.
type IncomeSource struct {
	SourceID    string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	AuditFields
}

// Income is an immutable recorded income fact. It has no status and never
// transitions once recorded.
type Income struct {
	IncomeID     string          `json:"id"`
	SourceID     string          `json:"income_source"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	PaymentMode  PaymentMode     `json:"payment_mode"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	Description  string          `json:"description,omitempty"`
	DepartmentID *string         `json:"department,omitempty"`
	StudentID    string          `json:"student_id,omitempty"`
	RecordedBy   string          `json:"recorded_by"`
	AuditFields
}

// CategoryType classifies an expense category.
type CategoryType string

const (
	CategoryOperational CategoryType = "OPERATIONAL"
	CategoryCapital     CategoryType = "CAPITAL"
	CategorySalary      CategoryType = "SALARY"
)

// ExpenseCategory is a category under which expenses are requested.
type ExpenseCategory struct {
	CategoryID   string       `json:"id"`
	Name         string       `json:"name"`
	Code         string       `json:"code"`
	CategoryType CategoryType `json:"category_type"`
	Description  string       `json:"description,omitempty"`
	IsActive     bool         `json:"is_active"`
	AuditFields
}

// ExpenseStatus is the approval state of an expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "PENDING"
	ExpenseApproved ExpenseStatus = "APPROVED"
	ExpensePaid     ExpenseStatus = "PAID"
	ExpenseRejected ExpenseStatus = "REJECTED"
)

// Expense is a requested spend that moves PENDING -> APPROVED -> PAID, or
// PENDING -> REJECTED. Status only moves forward.
type Expense struct {
	ExpenseID    string          `json:"id"`
	CategoryID   string          `json:"category"`
	DepartmentID string          `json:"department"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	PaymentMode  *PaymentMode    `json:"payment_mode,omitempty"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	Description  string          `json:"description"`
	Status       ExpenseStatus   `json:"status"`
	ReceiptPath  string          `json:"receipt,omitempty"`
	RequestedBy  string          `json:"requested_by"`
	ApprovedBy   *string         `json:"approved_by,omitempty"`
	AuditFields
}
