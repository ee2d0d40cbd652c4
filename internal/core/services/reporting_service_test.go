package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
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
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockBudgetRepo    *MockBudgetRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockBudgetRepo)
}

func (suite *ReportingServiceTestSuite) TestMonthlyExpenseReport_MissingParams() {
	ctx := context.Background()

	_, err := suite.service.MonthlyExpenseReport(ctx, 0, 2025)
	suite.Require().ErrorIs(err, apperrors.ErrMissingParameter)

	_, err = suite.service.MonthlyExpenseReport(ctx, 5, 0)
	suite.Require().ErrorIs(err, apperrors.ErrMissingParameter)
}

func (suite *ReportingServiceTestSuite) TestMonthlyExpenseReport_UsesInclusiveMonthRange() {
	ctx := context.Background()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("TotalPaidExpenses", ctx, start, last).Return(decimal.NewFromInt(3000), nil).Once()
	suite.mockReportingRepo.On("PaidExpensesByDepartment", ctx, start, last).Return([]domain.NameTotal{
		{Name: "Science", Total: decimal.NewFromInt(2000)},
		{Name: "Sports", Total: decimal.NewFromInt(1000)},
	}, nil).Once()
	suite.mockReportingRepo.On("PaidExpensesByCategory", ctx, start, last).Return([]domain.CategoryTotal{
		{Name: "Lab Supplies", CategoryType: domain.CategoryOperational, Total: decimal.NewFromInt(3000)},
	}, nil).Once()

	report, err := suite.service.MonthlyExpenseReport(ctx, 5, 2025)

	suite.Require().NoError(err)
	suite.Equal(5, report.Month)
	suite.Equal(2025, report.Year)
	suite.InDelta(3000, report.TotalExpenses, 0.001)
	suite.Len(report.DepartmentBreakdown, 2)
	suite.Equal("Science", report.DepartmentBreakdown[0].Department)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestIncomeVsExpenseSummary_Surplus() {
	ctx := context.Background()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("TotalIncome", ctx, start, end).Return(decimal.NewFromInt(5000), nil).Once()
	suite.mockReportingRepo.On("TotalPaidExpenses", ctx, start, end).Return(decimal.NewFromInt(3000), nil).Once()
	suite.mockReportingRepo.On("IncomeBySource", ctx, start, end).Return([]domain.NameTotal{
		{Name: "Tuition Fees", Total: decimal.NewFromInt(5000)},
	}, nil).Once()
	suite.mockReportingRepo.On("PaidExpensesByCategory", ctx, start, end).Return([]domain.CategoryTotal{}, nil).Once()

	summary, err := suite.service.IncomeVsExpenseSummary(ctx, start, end)

	suite.Require().NoError(err)
	suite.InDelta(5000, summary.Summary.TotalIncome, 0.001)
	suite.InDelta(3000, summary.Summary.TotalExpenses, 0.001)
	suite.InDelta(2000, summary.Summary.Balance, 0.001)
	suite.Equal("Surplus", summary.Summary.Status)
	suite.Equal("2025-05-01", summary.Period.StartDate)
}

func (suite *ReportingServiceTestSuite) TestIncomeVsExpenseSummary_Deficit() {
	ctx := context.Background()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("TotalIncome", ctx, start, end).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockReportingRepo.On("TotalPaidExpenses", ctx, start, end).Return(decimal.NewFromInt(3000), nil).Once()
	suite.mockReportingRepo.On("IncomeBySource", ctx, start, end).Return([]domain.NameTotal{}, nil).Once()
	suite.mockReportingRepo.On("PaidExpensesByCategory", ctx, start, end).Return([]domain.CategoryTotal{}, nil).Once()

	summary, err := suite.service.IncomeVsExpenseSummary(ctx, start, end)

	suite.Require().NoError(err)
	suite.Equal("Deficit", summary.Summary.Status)
	suite.InDelta(-2000, summary.Summary.Balance, 0.001)
}

func (suite *ReportingServiceTestSuite) TestIncomeVsExpenseSummary_MissingDates() {
	_, err := suite.service.IncomeVsExpenseSummary(context.Background(), time.Time{}, time.Now())
	suite.Require().ErrorIs(err, apperrors.ErrMissingParameter)
}

func (suite *ReportingServiceTestSuite) TestBudgetVsActualReport_SkipsUndecidedBudgets() {
	ctx := context.Background()
	fy := "24-25"
	deptID := uuid.NewString()

	approved := domain.BudgetDetail{
		Budget: domain.Budget{
			BudgetID:        uuid.NewString(),
			DepartmentID:    deptID,
			FinancialYear:   fy,
			AllocatedAmount: decimal.NewFromInt(100000),
			Status:          domain.BudgetApproved,
		},
		DepartmentName: "Science",
	}
	draft := domain.BudgetDetail{
		Budget: domain.Budget{
			BudgetID:        uuid.NewString(),
			DepartmentID:    uuid.NewString(),
			FinancialYear:   fy,
			AllocatedAmount: decimal.NewFromInt(50000),
			Status:          domain.BudgetDraft,
		},
		DepartmentName: "Sports",
	}

	suite.mockBudgetRepo.On("FindBudgets", ctx, mock.Anything).Return([]domain.BudgetDetail{approved, draft}, nil).Once()

	from := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	suite.mockReportingRepo.On("SumPaidExpenses", ctx, deptID, from, to).Return(decimal.NewFromInt(110000), nil).Once()

	report, err := suite.service.BudgetVsActualReport(ctx, fy, nil)

	suite.Require().NoError(err)
	suite.Require().Len(report.Budgets, 1)
	row := report.Budgets[0]
	suite.Equal("Science", row.Department)
	suite.InDelta(-10000, row.Variance, 0.001)
	suite.Equal("Over Budget", row.Status)
	suite.InDelta(-10, row.VariancePercentage, 0.001)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBudgetVsActualReport_ZeroAllocationVariancePercentage() {
	ctx := context.Background()
	fy := "24-25"
	deptID := uuid.NewString()

	unallocated := domain.BudgetDetail{
		Budget: domain.Budget{
			BudgetID:        uuid.NewString(),
			DepartmentID:    deptID,
			FinancialYear:   fy,
			AllocatedAmount: decimal.Zero,
			Status:          domain.BudgetApproved,
		},
		DepartmentName: "Library",
	}

	suite.mockBudgetRepo.On("FindBudgets", ctx, mock.Anything).Return([]domain.BudgetDetail{unallocated}, nil).Once()
	suite.mockReportingRepo.On("SumPaidExpenses", ctx, deptID, mock.Anything, mock.Anything).Return(decimal.NewFromInt(500), nil).Once()

	report, err := suite.service.BudgetVsActualReport(ctx, fy, nil)

	suite.Require().NoError(err)
	suite.Require().Len(report.Budgets, 1)
	row := report.Budgets[0]
	suite.InDelta(-500, row.Variance, 0.001)
	suite.InDelta(0, row.VariancePercentage, 0.001)
	suite.InDelta(0, row.UtilizationPercentage, 0.001)
	suite.Equal("Over Budget", row.Status)
}

func (suite *ReportingServiceTestSuite) TestBudgetVsActualReport_RequiresFinancialYear() {
	_, err := suite.service.BudgetVsActualReport(context.Background(), "", nil)
	suite.Require().ErrorIs(err, apperrors.ErrMissingParameter)

	_, err = suite.service.BudgetVsActualReport(context.Background(), "2024-2025", nil)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestDepartmentSummaryReport_NetPerDepartment() {
	ctx := context.Background()
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("DepartmentFinancials", ctx, start, end).Return([]domain.DepartmentFinancial{
		{DepartmentName: "Science", Income: decimal.NewFromInt(8000), Expenses: decimal.NewFromInt(3000)},
		{DepartmentName: "Sports", Income: decimal.Zero, Expenses: decimal.NewFromInt(1200)},
	}, nil).Once()

	report, err := suite.service.DepartmentSummaryReport(ctx, start, end)

	suite.Require().NoError(err)
	suite.Require().Len(report.Departments, 2)
	suite.InDelta(5000, report.Departments[0].Net, 0.001)
	suite.InDelta(-1200, report.Departments[1].Net, 0.001)
}

func (suite *ReportingServiceTestSuite) TestAuditExport_CSVStructure() {
	ctx := context.Background()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("TotalIncome", ctx, start, end).Return(decimal.NewFromInt(5000), nil).Once()
	suite.mockReportingRepo.On("TotalPaidExpenses", ctx, start, end).Return(decimal.NewFromInt(3000), nil).Once()
	suite.mockReportingRepo.On("IncomeLines", ctx, start, end, 20).Return([]domain.AuditLine{
		{Kind: "INCOME", Label: "Tuition Fees", Amount: decimal.NewFromInt(5000), Date: start, Status: "RECEIVED"},
	}, nil).Once()
	suite.mockReportingRepo.On("ExpenseLines", ctx, start, end, 20).Return([]domain.AuditLine{
		{Kind: "EXPENSE", Label: "Lab Supplies", Amount: decimal.NewFromInt(3000), Date: end, Status: "PAID"},
	}, nil).Once()

	data, filename, err := suite.service.AuditExport(ctx, start, end)

	suite.Require().NoError(err)
	suite.Equal("audit_report_2025-05-01_2025-05-31.csv", filename)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	suite.Require().NoError(err)
	// Blank separator lines are not records.
	suite.Require().Len(records, 10)
	suite.Equal([]string{"Financial Audit Report"}, records[0])
	suite.Equal([]string{"Period", "2025-05-01 to 2025-05-31"}, records[1])
	suite.Equal([]string{"Summary"}, records[2])
	suite.Equal([]string{"Total Income", "5000"}, records[3])
	suite.Equal([]string{"Total Expenses", "3000"}, records[4])
	suite.Equal([]string{"Net Balance", "2000"}, records[5])
	suite.Equal([]string{"Type", "Source/Category", "Amount", "Date", "Status"}, records[7])
	suite.Equal([]string{"INCOME", "Tuition Fees", "5000", "2025-05-01", "RECEIVED"}, records[8])
	suite.Equal([]string{"EXPENSE", "Lab Supplies", "3000", "2025-05-31", "PAID"}, records[9])
}

func (suite *ReportingServiceTestSuite) TestAuditExport_MissingDates() {
	_, _, err := suite.service.AuditExport(context.Background(), time.Now(), time.Time{})
	suite.Require().ErrorIs(err, apperrors.ErrMissingParameter)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
