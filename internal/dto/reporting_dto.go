package dto

// Report payloads use float64 amounts; reports are display artifacts and the
// exact decimal values stay in the ledger endpoints.

type SourceTotal struct {
	Source string  `json:"source"`
	Total  float64 `json:"total"`
}

type DepartmentTotal struct {
	Department string  `json:"department"`
	Total      float64 `json:"total"`
}

type CategoryBreakdownRow struct {
	Category     string  `json:"category"`
	CategoryType string  `json:"category_type"`
	Total        float64 `json:"total"`
}

type MonthlyExpenseReport struct {
	Month               int                    `json:"month"`
	Year                int                    `json:"year"`
	TotalExpenses       float64                `json:"total_expenses"`
	DepartmentBreakdown []DepartmentTotal      `json:"department_breakdown"`
	CategoryBreakdown   []CategoryBreakdownRow `json:"category_breakdown"`
}

type BudgetVsActualRow struct {
	BudgetID              string  `json:"budget_id"`
	Department            string  `json:"department"`
	FinancialYear         string  `json:"financial_year"`
	Month                 *int    `json:"month,omitempty"`
	AllocatedBudget       float64 `json:"allocated_budget"`
	ActualSpent           float64 `json:"actual_spent"`
	Variance              float64 `json:"variance"`
	VariancePercentage    float64 `json:"variance_percentage"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
	Status                string  `json:"status"` // Over Budget / Under Budget
}

type BudgetVsActualReport struct {
	FinancialYear string              `json:"financial_year"`
	Budgets       []BudgetVsActualRow `json:"budgets"`
}

type ReportPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type IncomeVsExpenseTotals struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`
	Status        string  `json:"status"` // Surplus / Deficit
}

type IncomeVsExpenseSummary struct {
	Period           ReportPeriod           `json:"period"`
	Summary          IncomeVsExpenseTotals  `json:"summary"`
	IncomeBreakdown  []SourceTotal          `json:"income_breakdown"`
	ExpenseBreakdown []CategoryBreakdownRow `json:"expense_breakdown"`
}

type DepartmentSummaryRow struct {
	Department string  `json:"department"`
	Income     float64 `json:"income"`
	Expenses   float64 `json:"expenses"`
	Net        float64 `json:"net"`
}

type DepartmentSummaryReport struct {
	Period      ReportPeriod           `json:"period"`
	Departments []DepartmentSummaryRow `json:"departments"`
}
