package domain_test

import (
	"testing"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role    domain.Role
		finance bool
		budget  bool
	}{
		{domain.RoleSuperAdmin, true, true},
		{domain.RoleFinanceAdmin, true, true},
		{domain.RoleDepartmentHead, false, true},
		{domain.RoleAuditor, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.finance, tt.role.HasFinanceAccess())
			assert.Equal(t, tt.budget, tt.role.HasBudgetAccess())
			assert.True(t, tt.role.Valid())
		})
	}
	assert.False(t, domain.Role("INTERN").Valid())
}

func TestNetSalary(t *testing.T) {
	net := domain.NetSalary(
		decimal.NewFromInt(30000),
		decimal.NewFromInt(5000),
		decimal.NewFromInt(2000),
	)
	assert.True(t, net.Equal(decimal.NewFromInt(33000)))

	// Deductions can exceed earnings; the derivation does not clamp.
	net = domain.NetSalary(decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(150))
	assert.True(t, net.Equal(decimal.NewFromInt(-50)))
}

func TestBudgetUtilization(t *testing.T) {
	b := domain.Budget{AllocatedAmount: decimal.NewFromInt(120000)}
	spent := decimal.NewFromInt(40000)

	assert.True(t, b.Remaining(spent).Equal(decimal.NewFromInt(80000)))
	assert.True(t, b.Utilization(spent).Equal(decimal.NewFromFloat(33.33)))
}

func TestBudgetUtilization_ZeroAllocation(t *testing.T) {
	b := domain.Budget{AllocatedAmount: decimal.Zero}
	assert.True(t, b.Utilization(decimal.NewFromInt(9999)).IsZero())
}

func TestFullName(t *testing.T) {
	u := domain.User{FirstName: "Asha", LastName: "Verma"}
	assert.Equal(t, "Asha Verma", u.FullName())

	e := domain.Employee{FirstName: "Ravi"}
	assert.Equal(t, "Ravi", e.FullName())
}
