package roles

import (
	"context"
	"sort"

	"github.com/casbin/casbin/v2"
)

type RoleOverview struct {
	Role        string `json:"role"`
	Permissions int    `json:"permissions"`
}

type CasbinRoleUsecase struct {
	enforcer *casbin.Enforcer
}

func NewCasbinRoleUsecase(e *casbin.Enforcer) *CasbinRoleUsecase {
	return &CasbinRoleUsecase{enforcer: e}
}

func (u *CasbinRoleUsecase) Authorize(ctx context.Context, role, method, path string) (bool, error) {
	return u.enforcer.Enforce(role, method, path)
}

// Overview counts the route permissions granted to each role.
func (u *CasbinRoleUsecase) Overview(ctx context.Context) ([]RoleOverview, error) {
	subjects, err := u.enforcer.GetAllSubjects()
	if err != nil {
		return nil, err
	}
	sort.Strings(subjects)

	overview := make([]RoleOverview, 0, len(subjects))
	for _, subject := range subjects {
		policies, err := u.enforcer.GetFilteredPolicy(0, subject)
		if err != nil {
			return nil, err
		}
		overview = append(overview, RoleOverview{Role: subject, Permissions: len(policies)})
	}
	return overview, nil
}
