package dto

import (
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
)

type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required,alphanum,uppercase,max=10"`
	Description string  `json:"description"`
	Head        *string `json:"head" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code" binding:"omitempty,alphanum,uppercase,max=10"`
	Description *string `json:"description"`
	Head        *string `json:"head" binding:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}

type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Head        *string   `json:"head,omitempty"`
	HeadName    *string   `json:"head_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToDepartmentResponse(d *domain.DepartmentDetail) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.DepartmentID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		Head:        d.HeadUserID,
		HeadName:    d.HeadName,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

func ToDepartmentResponses(depts []domain.DepartmentDetail) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(depts))
	for i := range depts {
		out = append(out, ToDepartmentResponse(&depts[i]))
	}
	return out
}
