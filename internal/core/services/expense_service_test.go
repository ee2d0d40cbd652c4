package services_test

import (
	"context"
	"testing"

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

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockDeptRepo    *MockDepartmentRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.ExpenseSvcFacade
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockDeptRepo = new(MockDepartmentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockDeptRepo, suite.mockUserRepo)
}

func (suite *ExpenseServiceTestSuite) expectActor(userID string, role domain.Role) {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, userID).Return(newActiveUser(userID, role), nil).Once()
}

func pendingExpenseDetail(expenseID, requesterID string) *domain.ExpenseDetail {
	return &domain.ExpenseDetail{
		Expense: domain.Expense{
			ExpenseID:    expenseID,
			CategoryID:   uuid.NewString(),
			DepartmentID: uuid.NewString(),
			Amount:       decimal.NewFromInt(1500),
			Description:  "Lab equipment",
			Status:       domain.ExpensePending,
			RequestedBy:  requesterID,
		},
		CategoryName:   "Lab Supplies",
		DepartmentName: "Science",
	}
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	expenseID := uuid.NewString()
	detail := pendingExpenseDetail(expenseID, uuid.NewString())

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(detail, nil).Once()
	suite.mockExpenseRepo.On("TransitionExpenseStatus", ctx, expenseID, domain.ExpensePending, domain.ExpenseApproved, mock.MatchedBy(func(approvedBy *string) bool {
		return approvedBy != nil && *approvedBy == actorID
	}), actorID, mock.Anything).Return(nil).Once()

	approved := *detail
	approved.Status = domain.ExpenseApproved
	approved.ApprovedBy = &actorID
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&approved, nil).Once()

	result, err := suite.service.ApproveExpense(ctx, actorID, expenseID)

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseApproved, result.Status)
	suite.Require().NotNil(result.ApprovedBy)
	suite.Equal(actorID, *result.ApprovedBy)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_ForbiddenForAuditor() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleAuditor)

	result, err := suite.service.ApproveExpense(ctx, actorID, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "TransitionExpenseStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_ConflictWhenNotPending() {
	ctx := context.Background()
	actorID := uuid.NewString()
	expenseID := uuid.NewString()
	detail := pendingExpenseDetail(expenseID, uuid.NewString())
	detail.Status = domain.ExpensePaid

	suite.expectActor(actorID, domain.RoleSuperAdmin)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(detail, nil).Once()

	result, err := suite.service.ApproveExpense(ctx, actorID, expenseID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "TransitionExpenseStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestRejectExpense_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	expenseID := uuid.NewString()
	detail := pendingExpenseDetail(expenseID, uuid.NewString())

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(detail, nil).Once()
	suite.mockExpenseRepo.On("TransitionExpenseStatus", ctx, expenseID, domain.ExpensePending, domain.ExpenseRejected, mock.Anything, actorID, mock.Anything).Return(nil).Once()

	rejected := *detail
	rejected.Status = domain.ExpenseRejected
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&rejected, nil).Once()

	result, err := suite.service.RejectExpense(ctx, actorID, expenseID)

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseRejected, result.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestMarkExpensePaid_RequiresApproved() {
	ctx := context.Background()
	actorID := uuid.NewString()
	expenseID := uuid.NewString()
	detail := pendingExpenseDetail(expenseID, uuid.NewString())

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(detail, nil).Once()

	result, err := suite.service.MarkExpensePaid(ctx, actorID, expenseID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
}

func (suite *ExpenseServiceTestSuite) TestMarkExpensePaid_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	expenseID := uuid.NewString()
	detail := pendingExpenseDetail(expenseID, uuid.NewString())
	detail.Status = domain.ExpenseApproved

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(detail, nil).Once()
	suite.mockExpenseRepo.On("TransitionExpenseStatus", ctx, expenseID, domain.ExpenseApproved, domain.ExpensePaid, (*string)(nil), actorID, mock.Anything).Return(nil).Once()

	paid := *detail
	paid.Status = domain.ExpensePaid
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&paid, nil).Once()

	result, err := suite.service.MarkExpensePaid(ctx, actorID, expenseID)

	suite.Require().NoError(err)
	suite.Equal(domain.ExpensePaid, result.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_ForbiddenForOtherRequester() {
	ctx := context.Background()
	actorID := uuid.NewString()
	expenseID := uuid.NewString()
	detail := pendingExpenseDetail(expenseID, uuid.NewString())

	suite.expectActor(actorID, domain.RoleDepartmentHead)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(detail, nil).Once()

	newDesc := "Changed"
	result, err := suite.service.UpdateExpense(ctx, actorID, expenseID, dto.UpdateExpenseRequest{Description: &newDesc})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_ConflictAfterDecision() {
	ctx := context.Background()
	actorID := uuid.NewString()
	expenseID := uuid.NewString()
	detail := pendingExpenseDetail(expenseID, actorID)
	detail.Status = domain.ExpenseApproved

	suite.expectActor(actorID, domain.RoleDepartmentHead)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(detail, nil).Once()

	newDesc := "Changed"
	result, err := suite.service.UpdateExpense(ctx, actorID, expenseID, dto.UpdateExpenseRequest{Description: &newDesc})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RejectsInactiveCategory() {
	ctx := context.Background()
	actorID := uuid.NewString()
	categoryID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleAuditor)
	inactive := &domain.ExpenseCategory{CategoryID: categoryID, Name: "Old", IsActive: false}
	suite.mockExpenseRepo.On("FindExpenseCategoryByID", ctx, categoryID).Return(inactive, nil).Once()

	req := dto.CreateExpenseRequest{
		Category:    categoryID,
		Department:  uuid.NewString(),
		Amount:      decimal.NewFromInt(100),
		Date:        "2025-04-10",
		Description: "Chalk",
	}
	result, err := suite.service.CreateExpense(ctx, actorID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_InactiveActorUnauthorized() {
	ctx := context.Background()
	actorID := uuid.NewString()
	inactive := newActiveUser(actorID, domain.RoleFinanceAdmin)
	inactive.IsActive = false
	suite.mockUserRepo.On("FindUserByID", mock.Anything, actorID).Return(inactive, nil).Once()

	req := dto.CreateExpenseRequest{
		Category:    uuid.NewString(),
		Department:  uuid.NewString(),
		Amount:      decimal.NewFromInt(100),
		Date:        "2025-04-10",
		Description: "Chalk",
	}
	result, err := suite.service.CreateExpense(ctx, actorID, req)

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(result)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
