package services

// ServiceContainer bundles every service facade for handler registration.
type ServiceContainer struct {
	UserSvc        UserSvcFacade
	TokenSvc       TokenSvcFacade
	GoogleOAuthSvc GoogleOAuthSvcFacade
	DepartmentSvc  DepartmentSvcFacade
	IncomeSvc      IncomeSvcFacade
	ExpenseSvc     ExpenseSvcFacade
	BudgetSvc      BudgetSvcFacade
	PayrollSvc     PayrollSvcFacade
	ReportingSvc   ReportingSvcFacade
}
