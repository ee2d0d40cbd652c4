package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/edusuite/school_finance_api/internal/middleware"
)

type incomeService struct {
	incomeRepo portsrepo.IncomeRepository
	userRepo   portsrepo.UserRepository
}

// NewIncomeService creates the income ledger service.
func NewIncomeService(incomeRepo portsrepo.IncomeRepository, userRepo portsrepo.UserRepository) portssvc.IncomeSvcFacade {
	return &incomeService{incomeRepo: incomeRepo, userRepo: userRepo}
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

func (s *incomeService) CreateIncomeSource(ctx context.Context, actorUserID string, req dto.CreateIncomeSourceRequest) (*domain.IncomeSource, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	now := time.Now()
	source := domain.IncomeSource{
		SourceID:    uuid.NewString(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.incomeRepo.SaveIncomeSource(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to create income source: %w", err)
	}
	return &source, nil
}

func (s *incomeService) ListIncomeSources(ctx context.Context) ([]domain.IncomeSource, error) {
	sources, err := s.incomeRepo.FindIncomeSources(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list income sources: %w", err)
	}
	if sources == nil {
		sources = []domain.IncomeSource{}
	}
	return sources, nil
}

func (s *incomeService) UpdateIncomeSource(ctx context.Context, actorUserID, sourceID string, req dto.UpdateIncomeSourceRequest) (*domain.IncomeSource, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	source, err := s.incomeRepo.FindIncomeSourceByID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load income source for update: %w", err)
	}
	if source == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		source.Name = *req.Name
	}
	if req.Description != nil {
		source.Description = *req.Description
	}
	if req.IsActive != nil {
		source.IsActive = *req.IsActive
	}
	source.LastUpdatedAt = time.Now()
	source.LastUpdatedBy = actor.UserID

	if err := s.incomeRepo.UpdateIncomeSource(ctx, *source); err != nil {
		return nil, fmt.Errorf("failed to update income source: %w", err)
	}
	return source, nil
}

func (s *incomeService) RecordIncome(ctx context.Context, actorUserID string, req dto.CreateIncomeRequest) (*domain.IncomeDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	source, err := s.incomeRepo.FindIncomeSourceByID(ctx, req.IncomeSource)
	if err != nil {
		return nil, fmt.Errorf("failed to verify income source: %w", err)
	}
	if source == nil || !source.IsActive {
		return nil, fmt.Errorf("%w: income source does not exist or is inactive", apperrors.ErrValidation)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	income := domain.Income{
		IncomeID:     uuid.NewString(),
		SourceID:     req.IncomeSource,
		Amount:       req.Amount,
		Date:         date,
		PaymentMode:  domain.PaymentMode(req.PaymentMode),
		ReferenceID:  req.ReferenceID,
		Description:  req.Description,
		DepartmentID: req.Department,
		StudentID:    req.StudentID,
		RecordedBy:   actor.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.incomeRepo.SaveIncome(ctx, income); err != nil {
		logger.Error("Failed to save income", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record income: %w", err)
	}

	logger.Info("Income recorded", slog.String("income_id", income.IncomeID), slog.String("amount", income.Amount.String()))
	return s.GetIncomeByID(ctx, income.IncomeID)
}

func (s *incomeService) GetIncomeByID(ctx context.Context, incomeID string) (*domain.IncomeDetail, error) {
	income, err := s.incomeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	if income == nil {
		return nil, apperrors.ErrNotFound
	}
	return income, nil
}

func (s *incomeService) ListIncomes(ctx context.Context, params dto.ListIncomesParams) ([]domain.IncomeDetail, error) {
	filter := portsrepo.ListIncomesFilter{
		SourceID:     params.Source,
		DepartmentID: params.Department,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	if params.StartDate != nil {
		from, err := dto.ParseDate(*params.StartDate)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if params.EndDate != nil {
		to, err := dto.ParseDate(*params.EndDate)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	incomes, err := s.incomeRepo.FindIncomes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	if incomes == nil {
		incomes = []domain.IncomeDetail{}
	}
	return incomes, nil
}

func (s *incomeService) UpdateIncome(ctx context.Context, actorUserID, incomeID string, req dto.UpdateIncomeRequest) (*domain.IncomeDetail, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.incomeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load income for update: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	income := detail.Income

	if req.IncomeSource != nil {
		source, err := s.incomeRepo.FindIncomeSourceByID(ctx, *req.IncomeSource)
		if err != nil {
			return nil, fmt.Errorf("failed to verify income source: %w", err)
		}
		if source == nil || !source.IsActive {
			return nil, fmt.Errorf("%w: income source does not exist or is inactive", apperrors.ErrValidation)
		}
		income.SourceID = *req.IncomeSource
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		income.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		income.Date = date
	}
	if req.PaymentMode != nil {
		income.PaymentMode = domain.PaymentMode(*req.PaymentMode)
	}
	if req.ReferenceID != nil {
		income.ReferenceID = *req.ReferenceID
	}
	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.Department != nil {
		income.DepartmentID = req.Department
	}
	if req.StudentID != nil {
		income.StudentID = *req.StudentID
	}
	income.LastUpdatedAt = time.Now()
	income.LastUpdatedBy = actor.UserID

	if err := s.incomeRepo.UpdateIncome(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}
	return s.GetIncomeByID(ctx, incomeID)
}

func (s *incomeService) DeleteIncome(ctx context.Context, actorUserID, incomeID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return err
	}

	if err := s.incomeRepo.DeleteIncome(ctx, incomeID); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	logger.Info("Income deleted", slog.String("income_id", incomeID))
	return nil
}
