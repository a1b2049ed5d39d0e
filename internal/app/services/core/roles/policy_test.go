package roles

import (
	"context"
	"homevisit-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforcer(t *testing.T) {
	enforcer, err := NewEnforcer("/api/v1")
	require.NoError(t, err)

	cases := []struct {
		name    string
		role    string
		method  string
		path    string
		allowed bool
	}{
		{"patient lists addresses", constvars.RolePatient, "GET", "/api/v1/patient/addresses", true},
		{"patient deletes address", constvars.RolePatient, "DELETE", "/api/v1/patient/addresses/a1", true},
		{"patient cannot patch address", constvars.RolePatient, "PATCH", "/api/v1/patient/addresses/a1", false},
		{"patient settles", constvars.RolePatient, "POST", "/api/v1/patient/appointments/x/payments", true},
		{"doctor cannot settle", constvars.RoleDoctor, "POST", "/api/v1/patient/appointments/x/payments", false},
		{"doctor accepts", constvars.RoleDoctor, "POST", "/api/v1/doctor/requests/x/accept", true},
		{"patient cannot accept", constvars.RolePatient, "POST", "/api/v1/doctor/requests/x/accept", false},
		{"admin lists users", constvars.RoleAdmin, "GET", "/api/v1/admin/users", true},
		{"superadmin deletes user", constvars.RoleSuperadmin, "DELETE", "/api/v1/admin/users/u1", true},
		{"doctor cannot list users", constvars.RoleDoctor, "GET", "/api/v1/admin/users", false},
		{"admin cannot see overview", constvars.RoleAdmin, "GET", "/api/v1/superadmin/overview", false},
		{"superadmin sees overview", constvars.RoleSuperadmin, "GET", "/api/v1/superadmin/overview", true},
		{"any role reads own profile", constvars.RoleDoctor, "GET", "/api/v1/users/me", true},
		{"nested path does not match", constvars.RolePatient, "GET", "/api/v1/patient/addresses/a1/extra", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := enforcer.Enforce(tc.role, tc.method, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestCanManage(t *testing.T) {
	assert.True(t, CanManage(constvars.RoleSuperadmin, constvars.RoleAdmin))
	assert.True(t, CanManage(constvars.RoleSuperadmin, constvars.RoleSuperadmin))
	assert.True(t, CanManage(constvars.RoleAdmin, constvars.RoleDoctor))
	assert.True(t, CanManage(constvars.RoleAdmin, constvars.RolePatient))
	assert.False(t, CanManage(constvars.RoleAdmin, constvars.RoleAdmin))
	assert.False(t, CanManage(constvars.RoleAdmin, constvars.RoleSuperadmin))
	assert.False(t, CanManage(constvars.RoleDoctor, constvars.RolePatient))
}

func TestOverview(t *testing.T) {
	enforcer, err := NewEnforcer("/api/v1")
	require.NoError(t, err)

	overview, err := NewCasbinRoleUsecase(enforcer).Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview, 4)
	assert.Equal(t, constvars.RoleAdmin, overview[0].Role)
	assert.Equal(t, constvars.RoleSuperadmin, overview[3].Role)
	assert.Equal(t, overview[0].Permissions+1, overview[3].Permissions)
}
