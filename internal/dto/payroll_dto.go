package dto

import (
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeID string          `json:"employee_id" binding:"required,max=20"`
	FirstName  string          `json:"first_name" binding:"required"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email" binding:"omitempty,email"`
	Phone      string          `json:"phone"`
	Role       string          `json:"role" binding:"required,oneof=TEACHER ADMIN_STAFF SUPPORT_STAFF LAB_ASSISTANT LIBRARIAN OTHER"`
	Department string          `json:"department" binding:"required,uuid"`
	BaseSalary decimal.Decimal `json:"base_salary" binding:"required"`
	JoinDate   string          `json:"join_date" binding:"required,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FirstName  *string          `json:"first_name"`
	LastName   *string          `json:"last_name"`
	Email      *string          `json:"email" binding:"omitempty,email"`
	Phone      *string          `json:"phone"`
	Role       *string          `json:"role" binding:"omitempty,oneof=TEACHER ADMIN_STAFF SUPPORT_STAFF LAB_ASSISTANT LIBRARIAN OTHER"`
	Department *string          `json:"department" binding:"omitempty,uuid"`
	BaseSalary *decimal.Decimal `json:"base_salary"`
	IsActive   *bool            `json:"is_active"`
}

type ListEmployeesParams struct {
	Department *string `form:"department" binding:"omitempty,uuid"`
	Role       *string `form:"role" binding:"omitempty,oneof=TEACHER ADMIN_STAFF SUPPORT_STAFF LAB_ASSISTANT LIBRARIAN OTHER"`
	ActiveOnly bool    `form:"active_only"`
	Limit      int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset     int     `form:"offset,default=0" binding:"omitempty,min=0"`
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Role           string          `json:"role"`
	Department     string          `json:"department"`
	DepartmentName string          `json:"department_name"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	JoinDate       string          `json:"join_date"`
	IsActive       bool            `json:"is_active"`
}

func ToEmployeeResponse(e *domain.EmployeeDetail) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.Employee.EmployeeID,
		EmployeeID:     e.EmployeeCode,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		Email:          e.Email,
		Phone:          e.Phone,
		Role:           string(e.StaffRole),
		Department:     e.DepartmentID,
		DepartmentName: e.DepartmentName,
		BaseSalary:     e.BaseSalary,
		JoinDate:       FormatDate(e.JoinDate),
		IsActive:       e.IsActive,
	}
}

func ToEmployeeResponses(employees []domain.EmployeeDetail) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, ToEmployeeResponse(&employees[i]))
	}
	return out
}

// CreateSalaryRequest records one month's salary. net_amount is accepted for
// wire compatibility but never trusted; the stored value is always derived
// from the components.
type CreateSalaryRequest struct {
	Employee   string           `json:"employee" binding:"required,uuid"`
	Month      int              `json:"month" binding:"required,min=1,max=12"`
	Year       int              `json:"year" binding:"required,min=2000,max=2100"`
	BaseAmount decimal.Decimal  `json:"base_amount" binding:"required"`
	Allowances decimal.Decimal  `json:"allowances"`
	Deductions decimal.Decimal  `json:"deductions"`
	NetAmount  *decimal.Decimal `json:"net_amount"`
	Notes      string           `json:"notes"`
}

type UpdateSalaryRequest struct {
	BaseAmount *decimal.Decimal `json:"base_amount"`
	Allowances *decimal.Decimal `json:"allowances"`
	Deductions *decimal.Decimal `json:"deductions"`
	NetAmount  *decimal.Decimal `json:"net_amount"`
	Notes      *string          `json:"notes"`
}

type MarkSalaryPaidRequest struct {
	PaymentDate string `json:"payment_date" binding:"required,datetime=2006-01-02"`
	PaymentMode string `json:"payment_mode" binding:"required,oneof=CASH UPI BANK CHEQUE CARD"`
	ReferenceID string `json:"reference_id"`
}

type ListSalariesParams struct {
	Employee *string `form:"employee" binding:"omitempty,uuid"`
	Month    *int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year     *int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Status   *string `form:"status" binding:"omitempty,oneof=PENDING PAID CANCELLED"`
	Limit    int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset   int     `form:"offset,default=0" binding:"omitempty,min=0"`
}

type SalaryResponse struct {
	ID              string          `json:"id"`
	Employee        string          `json:"employee"`
	EmployeeName    string          `json:"employee_name"`
	EmployeeCode    string          `json:"employee_code"`
	DepartmentName  string          `json:"department_name"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	BaseAmount      decimal.Decimal `json:"base_amount"`
	Allowances      decimal.Decimal `json:"allowances"`
	Deductions      decimal.Decimal `json:"deductions"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	Status          string          `json:"status"`
	PaymentDate     *string         `json:"payment_date,omitempty"`
	PaymentMode     *string         `json:"payment_mode,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	ProcessedBy     string          `json:"processed_by"`
	ProcessedByName *string         `json:"processed_by_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func ToSalaryResponse(s *domain.SalaryDetail) SalaryResponse {
	var payDate *string
	if s.PaymentDate != nil {
		d := FormatDate(*s.PaymentDate)
		payDate = &d
	}
	var mode *string
	if s.PaymentMode != nil {
		m := string(*s.PaymentMode)
		mode = &m
	}
	return SalaryResponse{
		ID:              s.SalaryID,
		Employee:        s.Salary.EmployeeID,
		EmployeeName:    s.EmployeeName,
		EmployeeCode:    s.EmployeeCode,
		DepartmentName:  s.DepartmentName,
		Month:           s.Month,
		Year:            s.Year,
		BaseAmount:      s.BaseAmount,
		Allowances:      s.Allowances,
		Deductions:      s.Deductions,
		NetAmount:       s.NetAmount,
		Status:          string(s.Status),
		PaymentDate:     payDate,
		PaymentMode:     mode,
		ReferenceID:     s.ReferenceID,
		Notes:           s.Notes,
		ProcessedBy:     s.ProcessedBy,
		ProcessedByName: s.ProcessedByName,
		CreatedAt:       s.CreatedAt,
	}
}

func ToSalaryResponses(salaries []domain.SalaryDetail) []SalaryResponse {
	out := make([]SalaryResponse, 0, len(salaries))
	for i := range salaries {
		out = append(out, ToSalaryResponse(&salaries[i]))
	}
	return out
}
