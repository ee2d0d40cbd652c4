package domain

// Detail variants carry display names resolved by the repository joins so
// read paths can serialize `*_name` fields without extra lookups.

// DepartmentDetail is a department plus its head's display name.
type DepartmentDetail struct {
	Department
	HeadName *string
}

// IncomeDetail is an income plus resolved display names.
type IncomeDetail struct {
	Income
	SourceName     string
	DepartmentName *string
	RecordedByName *string
}

// ExpenseDetail is an expense plus resolved display names.
type ExpenseDetail struct {
	Expense
	CategoryName    string
	DepartmentName  string
	RequestedByName *string
	ApprovedByName  *string
}

// BudgetDetail is a budget plus resolved display names.
type BudgetDetail struct {
	Budget
	DepartmentName string
	CreatedByName  *string
	ApprovedByName *string
}

// EmployeeDetail is an employee plus the department name.
type EmployeeDetail struct {
	Employee
	DepartmentName string
}

// SalaryDetail is a salary record plus employee and department names.
type SalaryDetail struct {
	Salary
	EmployeeName    string
	EmployeeCode    string
	DepartmentName  string
	ProcessedByName *string
}
