package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/core/services"
	"github.com/edusuite/school_finance_api/internal/dto"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo    *MockBudgetRepository
	mockDeptRepo      *MockDepartmentRepository
	mockReportingRepo *MockReportingRepository
	mockUserRepo      *MockUserRepository
	service           portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockDeptRepo = new(MockDepartmentRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockDeptRepo, suite.mockReportingRepo, suite.mockUserRepo)
}

func (suite *BudgetServiceTestSuite) expectActor(userID string, role domain.Role) {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, userID).Return(newActiveUser(userID, role), nil).Once()
}

func budgetDetail(budgetID string, status domain.BudgetStatus) *domain.BudgetDetail {
	return &domain.BudgetDetail{
		Budget: domain.Budget{
			BudgetID:        budgetID,
			DepartmentID:    uuid.NewString(),
			FinancialYear:   "24-25",
			AllocatedAmount: decimal.NewFromInt(120000),
			Status:          status,
		},
		DepartmentName: "Science",
	}
}

func (suite *BudgetServiceTestSuite) TestLockBudget_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	budgetID := uuid.NewString()
	detail := budgetDetail(budgetID, domain.BudgetApproved)

	suite.expectActor(actorID, domain.RoleSuperAdmin)
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(detail, nil).Once()
	suite.mockBudgetRepo.On("TransitionBudgetStatus", ctx, budgetID, []domain.BudgetStatus{domain.BudgetApproved}, domain.BudgetLocked, (*string)(nil), (*time.Time)(nil), actorID, mock.Anything).Return(nil).Once()

	locked := *detail
	locked.Status = domain.BudgetLocked
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(&locked, nil).Once()

	result, err := suite.service.LockBudget(ctx, actorID, budgetID)

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetLocked, result.Status)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestLockBudget_ForbiddenForFinanceAdmin() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleFinanceAdmin)

	result, err := suite.service.LockBudget(ctx, actorID, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "TransitionBudgetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestLockBudget_RequiresApproved() {
	ctx := context.Background()
	actorID := uuid.NewString()
	budgetID := uuid.NewString()
	detail := budgetDetail(budgetID, domain.BudgetPending)

	suite.expectActor(actorID, domain.RoleSuperAdmin)
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(detail, nil).Once()

	result, err := suite.service.LockBudget(ctx, actorID, budgetID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_LockedRefusesEveryChange() {
	ctx := context.Background()
	actorID := uuid.NewString()
	budgetID := uuid.NewString()
	detail := budgetDetail(budgetID, domain.BudgetLocked)

	suite.expectActor(actorID, domain.RoleSuperAdmin)
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(detail, nil).Once()

	amount := decimal.NewFromInt(99)
	result, err := suite.service.UpdateBudget(ctx, actorID, budgetID, dto.UpdateBudgetRequest{AllocatedAmount: &amount})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_SubmitRequiresDraft() {
	ctx := context.Background()
	actorID := uuid.NewString()
	budgetID := uuid.NewString()
	detail := budgetDetail(budgetID, domain.BudgetApproved)

	suite.expectActor(actorID, domain.RoleDepartmentHead)
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(detail, nil).Once()

	status := "PENDING"
	result, err := suite.service.UpdateBudget(ctx, actorID, budgetID, dto.UpdateBudgetRequest{Status: &status})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_RejectedBackToDraft() {
	ctx := context.Background()
	actorID := uuid.NewString()
	budgetID := uuid.NewString()
	detail := budgetDetail(budgetID, domain.BudgetRejected)

	suite.expectActor(actorID, domain.RoleDepartmentHead)
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(detail, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Status == domain.BudgetDraft && b.LastUpdatedBy == actorID
	})).Return(nil).Once()

	redrafted := *detail
	redrafted.Status = domain.BudgetDraft
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(&redrafted, nil).Once()

	status := "DRAFT"
	result, err := suite.service.UpdateBudget(ctx, actorID, budgetID, dto.UpdateBudgetRequest{Status: &status})

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetDraft, result.Status)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_OnlyDraft() {
	ctx := context.Background()
	actorID := uuid.NewString()
	budgetID := uuid.NewString()
	detail := budgetDetail(budgetID, domain.BudgetApproved)

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(detail, nil).Once()

	err := suite.service.DeleteBudget(ctx, actorID, budgetID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "DeleteBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestSpentAmount_YearlyPeriodIsHalfOpen() {
	ctx := context.Background()
	budget := budgetDetail(uuid.NewString(), domain.BudgetApproved).Budget

	wantFrom := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	suite.mockReportingRepo.On("SumPaidExpenses", ctx, budget.DepartmentID, wantFrom, wantTo).Return(decimal.NewFromInt(40000), nil).Once()

	spent, err := suite.service.SpentAmount(ctx, budget)

	suite.Require().NoError(err)
	suite.True(spent.Equal(decimal.NewFromInt(40000)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUtilizationRounding() {
	budget := domain.Budget{AllocatedAmount: decimal.NewFromInt(120000)}
	spent := decimal.NewFromInt(40000)

	suite.True(budget.Utilization(spent).Equal(decimal.NewFromFloat(33.33)))
	suite.True(budget.Remaining(spent).Equal(decimal.NewFromInt(80000)))

	zero := domain.Budget{AllocatedAmount: decimal.Zero}
	suite.True(zero.Utilization(spent).IsZero())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
