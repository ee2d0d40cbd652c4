package dto

import (
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateBudgetRequest struct {
	Department      string          `json:"department" binding:"required,uuid"`
	FinancialYear   string          `json:"financial_year" binding:"required,fyear"`
	Month           *int            `json:"month" binding:"omitempty,min=1,max=12"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount" binding:"required"`
	Notes           string          `json:"notes"`
}

// UpdateBudgetRequest edits an unlocked budget. Status may only be set to
// DRAFT or PENDING here; approval, rejection and locking have their own
// endpoints.
type UpdateBudgetRequest struct {
	AllocatedAmount *decimal.Decimal `json:"allocated_amount"`
	Notes           *string          `json:"notes"`
	Status          *string          `json:"status" binding:"omitempty,oneof=DRAFT PENDING"`
}

type ListBudgetsParams struct {
	Department    *string `form:"department" binding:"omitempty,uuid"`
	FinancialYear *string `form:"financial_year" binding:"omitempty,fyear"`
	Status        *string `form:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED REJECTED LOCKED"`
	Month         *int    `form:"month" binding:"omitempty,min=1,max=12"`
	Limit         int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset        int     `form:"offset,default=0" binding:"omitempty,min=0"`
}

type BudgetResponse struct {
	ID                    string          `json:"id"`
	Department            string          `json:"department"`
	DepartmentName        string          `json:"department_name"`
	FinancialYear         string          `json:"financial_year"`
	Month                 *int            `json:"month,omitempty"`
	AllocatedAmount       decimal.Decimal `json:"allocated_amount"`
	SpentAmount           decimal.Decimal `json:"spent_amount"`
	RemainingAmount       decimal.Decimal `json:"remaining_amount"`
	UtilizationPercentage decimal.Decimal `json:"utilization_percentage"`
	Status                string          `json:"status"`
	Notes                 string          `json:"notes,omitempty"`
	CreatedBy             string          `json:"created_by"`
	CreatedByName         *string         `json:"created_by_name,omitempty"`
	ApprovedBy            *string         `json:"approved_by,omitempty"`
	ApprovedByName        *string         `json:"approved_by_name,omitempty"`
	ApprovedAt            *time.Time      `json:"approved_at,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

func ToBudgetResponse(b *domain.BudgetDetail, spent decimal.Decimal) BudgetResponse {
	return BudgetResponse{
		ID:                    b.BudgetID,
		Department:            b.DepartmentID,
		DepartmentName:        b.DepartmentName,
		FinancialYear:         b.FinancialYear,
		Month:                 b.Month,
		AllocatedAmount:       b.AllocatedAmount,
		SpentAmount:           spent,
		RemainingAmount:       b.Remaining(spent),
		UtilizationPercentage: b.Utilization(spent),
		Status:                string(b.Status),
		Notes:                 b.Notes,
		CreatedBy:             b.CreatedBy,
		CreatedByName:         b.CreatedByName,
		ApprovedBy:            b.ApprovedBy,
		ApprovedByName:        b.ApprovedByName,
		ApprovedAt:            b.ApprovedAt,
		CreatedAt:             b.CreatedAt,
	}
}
