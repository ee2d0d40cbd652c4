package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaffRole is the employment role of an employee. Distinct from the access
// Role of an application user.
type StaffRole string

const (
	StaffTeacher      StaffRole = "TEACHER"
	StaffAdmin        StaffRole = "ADMIN_STAFF"
	StaffSupport      StaffRole = "SUPPORT_STAFF"
	StaffLabAssistant StaffRole = "LAB_ASSISTANT"
	StaffLibrarian    StaffRole = "LIBRARIAN"
	StaffOther        StaffRole = "OTHER"
)

// Employee is a payroll master record.
type Employee struct {
	EmployeeID   string          `json:"id"`
	EmployeeCode string          `json:"employee_id"` // human-assigned unique code
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	StaffRole    StaffRole       `json:"role"`
	DepartmentID string          `json:"department"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	JoinDate     time.Time       `json:"join_date"`
	IsActive     bool            `json:"is_active"`
	AuditFields
}

// FullName returns the employee's display name.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// SalaryStatus is the payment state of a salary record.
type SalaryStatus string

const (
	SalaryPending   SalaryStatus = "PENDING"
	SalaryPaid      SalaryStatus = "PAID"
	SalaryCancelled SalaryStatus = "CANCELLED"
)

// Salary is a monthly computed salary fact, unique per (employee, month, year).
type Salary struct {
	SalaryID    string          `json:"id"`
	EmployeeID  string          `json:"employee"`
	Month       int             `json:"month"` // 1-12
	Year        int             `json:"year"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	Status      SalaryStatus    `json:"status"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	PaymentMode *PaymentMode    `json:"payment_mode,omitempty"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ProcessedBy string          `json:"processed_by"`
	AuditFields
}

// NetSalary derives the net amount from its components. Callers must invoke it
// before every persistence of a Salary; a caller-supplied net amount is never
// trusted.
func NetSalary(base, allowances, deductions decimal.Decimal) decimal.Decimal {
	return base.Add(allowances).Sub(deductions)
}
