package domain

// Role is the fixed access role assigned to a user.
type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleFinanceAdmin   Role = "FINANCE_ADMIN"
	RoleDepartmentHead Role = "DEPARTMENT_HEAD"
	RoleAuditor        Role = "AUDITOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleFinanceAdmin, RoleDepartmentHead, RoleAuditor:
		return true
	}
	return false
}

// HasFinanceAccess reports whether the role may approve, reject or pay
// financial records.
func (r Role) HasFinanceAccess() bool {
	return r == RoleSuperAdmin || r == RoleFinanceAdmin
}

// HasBudgetAccess reports whether the role may create or submit budgets.
func (r Role) HasBudgetAccess() bool {
	return r == RoleSuperAdmin || r == RoleFinanceAdmin || r == RoleDepartmentHead
}

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an authenticated principal of the application.
type User struct {
	UserID       string       `json:"id"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Phone        string       `json:"phone,omitempty"`
	Role         Role         `json:"role"`
	IsActive     bool         `json:"is_active"`
	AuthProvider AuthProvider `json:"-"`
	PasswordHash string       `json:"-"`
	AuditFields
}

// FullName returns the user's display name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
