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

type PayrollServiceTestSuite struct {
	suite.Suite
	mockPayrollRepo *MockPayrollRepository
	mockDeptRepo    *MockDepartmentRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.PayrollSvcFacade
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPayrollRepo = new(MockPayrollRepository)
	suite.mockDeptRepo = new(MockDepartmentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewPayrollService(suite.mockPayrollRepo, suite.mockDeptRepo, suite.mockUserRepo)
}

func (suite *PayrollServiceTestSuite) expectActor(userID string, role domain.Role) {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, userID).Return(newActiveUser(userID, role), nil).Once()
}

func activeEmployeeDetail(employeeID string) *domain.EmployeeDetail {
	return &domain.EmployeeDetail{
		Employee: domain.Employee{
			EmployeeID:   employeeID,
			EmployeeCode: "EMP001",
			FirstName:    "Asha",
			StaffRole:    domain.StaffTeacher,
			DepartmentID: uuid.NewString(),
			BaseSalary:   decimal.NewFromInt(50000),
			IsActive:     true,
		},
		DepartmentName: "Science",
	}
}

func pendingSalaryDetail(salaryID, employeeID string) *domain.SalaryDetail {
	return &domain.SalaryDetail{
		Salary: domain.Salary{
			SalaryID:   salaryID,
			EmployeeID: employeeID,
			Month:      5,
			Year:       2025,
			BaseAmount: decimal.NewFromInt(50000),
			Allowances: decimal.NewFromInt(5000),
			Deductions: decimal.NewFromInt(2000),
			NetAmount:  decimal.NewFromInt(53000),
			Status:     domain.SalaryPending,
		},
		EmployeeName: "Asha",
		EmployeeCode: "EMP001",
	}
}

func (suite *PayrollServiceTestSuite) TestCreateSalary_RecomputesNetIgnoringCallerValue() {
	ctx := context.Background()
	actorID := uuid.NewString()
	employeeID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockPayrollRepo.On("FindEmployeeByID", ctx, employeeID).Return(activeEmployeeDetail(employeeID), nil).Once()

	bogusNet := decimal.NewFromInt(999999)
	req := dto.CreateSalaryRequest{
		Employee:   employeeID,
		Month:      5,
		Year:       2025,
		BaseAmount: decimal.NewFromInt(50000),
		Allowances: decimal.NewFromInt(5000),
		Deductions: decimal.NewFromInt(2000),
		NetAmount:  &bogusNet,
	}

	suite.mockPayrollRepo.On("SaveSalary", ctx, mock.MatchedBy(func(s domain.Salary) bool {
		return s.NetAmount.Equal(decimal.NewFromInt(53000)) && s.Status == domain.SalaryPending && s.ProcessedBy == actorID
	})).Return(nil).Once()
	suite.mockPayrollRepo.On("FindSalaryByID", ctx, mock.Anything).Return(pendingSalaryDetail(uuid.NewString(), employeeID), nil).Once()

	result, err := suite.service.CreateSalary(ctx, actorID, req)

	suite.Require().NoError(err)
	suite.True(result.NetAmount.Equal(decimal.NewFromInt(53000)))
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCreateSalary_InactiveEmployeeRejected() {
	ctx := context.Background()
	actorID := uuid.NewString()
	employeeID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	inactive := activeEmployeeDetail(employeeID)
	inactive.IsActive = false
	suite.mockPayrollRepo.On("FindEmployeeByID", ctx, employeeID).Return(inactive, nil).Once()

	req := dto.CreateSalaryRequest{
		Employee:   employeeID,
		Month:      5,
		Year:       2025,
		BaseAmount: decimal.NewFromInt(50000),
	}
	result, err := suite.service.CreateSalary(ctx, actorID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "SaveSalary", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestCreateSalary_ForbiddenForDepartmentHead() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleDepartmentHead)

	result, err := suite.service.CreateSalary(ctx, actorID, dto.CreateSalaryRequest{Employee: uuid.NewString()})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
}

func (suite *PayrollServiceTestSuite) TestUpdateSalary_RecomputesNetFromChangedComponents() {
	ctx := context.Background()
	actorID := uuid.NewString()
	salaryID := uuid.NewString()
	detail := pendingSalaryDetail(salaryID, uuid.NewString())

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockPayrollRepo.On("FindSalaryByID", ctx, salaryID).Return(detail, nil).Once()

	newDeductions := decimal.NewFromInt(10000)
	bogusNet := decimal.NewFromInt(1)
	req := dto.UpdateSalaryRequest{Deductions: &newDeductions, NetAmount: &bogusNet}

	suite.mockPayrollRepo.On("UpdateSalary", ctx, mock.MatchedBy(func(s domain.Salary) bool {
		// 50000 + 5000 - 10000
		return s.NetAmount.Equal(decimal.NewFromInt(45000))
	})).Return(nil).Once()
	suite.mockPayrollRepo.On("FindSalaryByID", ctx, salaryID).Return(detail, nil).Once()

	_, err := suite.service.UpdateSalary(ctx, actorID, salaryID, req)

	suite.Require().NoError(err)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestUpdateSalary_OnlyPending() {
	ctx := context.Background()
	actorID := uuid.NewString()
	salaryID := uuid.NewString()
	detail := pendingSalaryDetail(salaryID, uuid.NewString())
	detail.Status = domain.SalaryPaid

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockPayrollRepo.On("FindSalaryByID", ctx, salaryID).Return(detail, nil).Once()

	notes := "late edit"
	result, err := suite.service.UpdateSalary(ctx, actorID, salaryID, dto.UpdateSalaryRequest{Notes: &notes})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "UpdateSalary", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestMarkSalaryPaid_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	salaryID := uuid.NewString()
	detail := pendingSalaryDetail(salaryID, uuid.NewString())

	suite.expectActor(actorID, domain.RoleFinanceAdmin)
	suite.mockPayrollRepo.On("FindSalaryByID", ctx, salaryID).Return(detail, nil).Once()

	wantDate := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	suite.mockPayrollRepo.On("MarkSalaryPaid", ctx, salaryID, wantDate, domain.PaymentMode("BANK"), "TXN-42", actorID, mock.Anything).Return(nil).Once()

	paid := *detail
	paid.Status = domain.SalaryPaid
	suite.mockPayrollRepo.On("FindSalaryByID", ctx, salaryID).Return(&paid, nil).Once()

	req := dto.MarkSalaryPaidRequest{PaymentDate: "2025-05-31", PaymentMode: "BANK", ReferenceID: "TXN-42"}
	result, err := suite.service.MarkSalaryPaid(ctx, actorID, salaryID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.SalaryPaid, result.Status)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCancelSalary_OnlyPending() {
	ctx := context.Background()
	actorID := uuid.NewString()
	salaryID := uuid.NewString()
	detail := pendingSalaryDetail(salaryID, uuid.NewString())
	detail.Status = domain.SalaryCancelled

	suite.expectActor(actorID, domain.RoleSuperAdmin)
	suite.mockPayrollRepo.On("FindSalaryByID", ctx, salaryID).Return(detail, nil).Once()

	result, err := suite.service.CancelSalary(ctx, actorID, salaryID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "CancelSalary", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
