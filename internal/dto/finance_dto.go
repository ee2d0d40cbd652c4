package dto

import (
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateIncomeSourceRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required,alphanum,uppercase,max=10"`
	Description string `json:"description"`
}

type UpdateIncomeSourceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type IncomeSourceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

func ToIncomeSourceResponse(s *domain.IncomeSource) IncomeSourceResponse {
	return IncomeSourceResponse{
		ID:          s.SourceID,
		Name:        s.Name,
		Code:        s.Code,
		Description: s.Description,
		IsActive:    s.IsActive,
	}
}

func ToIncomeSourceResponses(sources []domain.IncomeSource) []IncomeSourceResponse {
	out := make([]IncomeSourceResponse, 0, len(sources))
	for i := range sources {
		out = append(out, ToIncomeSourceResponse(&sources[i]))
	}
	return out
}

type CreateIncomeRequest struct {
	IncomeSource string          `json:"income_source" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Date         string          `json:"date" binding:"required,datetime=2006-01-02"`
	PaymentMode  string          `json:"payment_mode" binding:"required,oneof=CASH UPI BANK CHEQUE CARD"`
	ReferenceID  string          `json:"reference_id"`
	Description  string          `json:"description"`
	Department   *string         `json:"department" binding:"omitempty,uuid"`
	StudentID    string          `json:"student_id"`
}

type UpdateIncomeRequest struct {
	IncomeSource *string          `json:"income_source" binding:"omitempty,uuid"`
	Amount       *decimal.Decimal `json:"amount"`
	Date         *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMode  *string          `json:"payment_mode" binding:"omitempty,oneof=CASH UPI BANK CHEQUE CARD"`
	ReferenceID  *string          `json:"reference_id"`
	Description  *string          `json:"description"`
	Department   *string          `json:"department" binding:"omitempty,uuid"`
	StudentID    *string          `json:"student_id"`
}

type ListIncomesParams struct {
	Source     *string `form:"income_source" binding:"omitempty,uuid"`
	Department *string `form:"department" binding:"omitempty,uuid"`
	StartDate  *string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Limit      int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset     int     `form:"offset,default=0" binding:"omitempty,min=0"`
}

type IncomeResponse struct {
	ID             string          `json:"id"`
	IncomeSource   string          `json:"income_source"`
	SourceName     string          `json:"source_name"`
	Amount         decimal.Decimal `json:"amount"`
	Date           string          `json:"date"`
	PaymentMode    string          `json:"payment_mode"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	Description    string          `json:"description,omitempty"`
	Department     *string         `json:"department,omitempty"`
	DepartmentName *string         `json:"department_name,omitempty"`
	StudentID      string          `json:"student_id,omitempty"`
	RecordedBy     string          `json:"recorded_by"`
	RecordedByName *string         `json:"recorded_by_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToIncomeResponse(in *domain.IncomeDetail) IncomeResponse {
	return IncomeResponse{
		ID:             in.IncomeID,
		IncomeSource:   in.SourceID,
		SourceName:     in.SourceName,
		Amount:         in.Amount,
		Date:           FormatDate(in.Date),
		PaymentMode:    string(in.PaymentMode),
		ReferenceID:    in.ReferenceID,
		Description:    in.Description,
		Department:     in.DepartmentID,
		DepartmentName: in.DepartmentName,
		StudentID:      in.StudentID,
		RecordedBy:     in.RecordedBy,
		RecordedByName: in.RecordedByName,
		CreatedAt:      in.CreatedAt,
	}
}

func ToIncomeResponses(incomes []domain.IncomeDetail) []IncomeResponse {
	out := make([]IncomeResponse, 0, len(incomes))
	for i := range incomes {
		out = append(out, ToIncomeResponse(&incomes[i]))
	}
	return out
}

type CreateExpenseCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required,alphanum,uppercase,max=10"`
	CategoryType string `json:"category_type" binding:"required,oneof=OPERATIONAL CAPITAL SALARY"`
	Description  string `json:"description"`
}

type UpdateExpenseCategoryRequest struct {
	Name         *string `json:"name"`
	CategoryType *string `json:"category_type" binding:"omitempty,oneof=OPERATIONAL CAPITAL SALARY"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

type ExpenseCategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	CategoryType string `json:"category_type"`
	Description  string `json:"description,omitempty"`
	IsActive     bool   `json:"is_active"`
}

func ToExpenseCategoryResponse(c *domain.ExpenseCategory) ExpenseCategoryResponse {
	return ExpenseCategoryResponse{
		ID:           c.CategoryID,
		Name:         c.Name,
		Code:         c.Code,
		CategoryType: string(c.CategoryType),
		Description:  c.Description,
		IsActive:     c.IsActive,
	}
}

func ToExpenseCategoryResponses(categories []domain.ExpenseCategory) []ExpenseCategoryResponse {
	out := make([]ExpenseCategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, ToExpenseCategoryResponse(&categories[i]))
	}
	return out
}

type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,uuid"`
	Department  string          `json:"department" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	PaymentMode *string         `json:"payment_mode" binding:"omitempty,oneof=CASH UPI BANK CHEQUE CARD"`
	ReferenceID string          `json:"reference_id"`
	Description string          `json:"description" binding:"required"`
}

type UpdateExpenseRequest struct {
	Category    *string          `json:"category" binding:"omitempty,uuid"`
	Department  *string          `json:"department" binding:"omitempty,uuid"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMode *string          `json:"payment_mode" binding:"omitempty,oneof=CASH UPI BANK CHEQUE CARD"`
	ReferenceID *string          `json:"reference_id"`
	Description *string          `json:"description"`
}

type ListExpensesParams struct {
	Category   *string `form:"category" binding:"omitempty,uuid"`
	Department *string `form:"department" binding:"omitempty,uuid"`
	Status     *string `form:"status" binding:"omitempty,oneof=PENDING APPROVED PAID REJECTED"`
	StartDate  *string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Limit      int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset     int     `form:"offset,default=0" binding:"omitempty,min=0"`
}

type ExpenseResponse struct {
	ID              string          `json:"id"`
	Category        string          `json:"category"`
	CategoryName    string          `json:"category_name"`
	Department      string          `json:"department"`
	DepartmentName  string          `json:"department_name"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	PaymentMode     *string         `json:"payment_mode,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	RequestedBy     string          `json:"requested_by"`
	RequestedByName *string         `json:"requested_by_name,omitempty"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedByName  *string         `json:"approved_by_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func ToExpenseResponse(e *domain.ExpenseDetail) ExpenseResponse {
	var mode *string
	if e.PaymentMode != nil {
		m := string(*e.PaymentMode)
		mode = &m
	}
	return ExpenseResponse{
		ID:              e.ExpenseID,
		Category:        e.CategoryID,
		CategoryName:    e.CategoryName,
		Department:      e.DepartmentID,
		DepartmentName:  e.DepartmentName,
		Amount:          e.Amount,
		Date:            FormatDate(e.Date),
		PaymentMode:     mode,
		ReferenceID:     e.ReferenceID,
		Description:     e.Description,
		Status:          string(e.Status),
		RequestedBy:     e.RequestedBy,
		RequestedByName: e.RequestedByName,
		ApprovedBy:      e.ApprovedBy,
		ApprovedByName:  e.ApprovedByName,
		CreatedAt:       e.CreatedAt,
	}
}

func ToExpenseResponses(expenses []domain.ExpenseDetail) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, ToExpenseResponse(&expenses[i]))
	}
	return out
}
