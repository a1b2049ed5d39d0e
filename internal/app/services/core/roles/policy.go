package roles

import (
	"fmt"
	"homevisit-service/internal/pkg/constvars"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

const rbacModel = `
[request_definition]
r = sub, act, obj

[policy_definition]
p = sub, act, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && regexMatch(r.act, p.act) && keyMatch2(r.obj, p.obj)
`

// Permission grants a role the methods matching Method on paths matching Path.
// Path uses keyMatch2 placeholders (":id") and is relative to the API base path.
type Permission struct {
	Role   string
	Method string
	Path   string
}

var (
	staff   = []string{constvars.RoleAdmin, constvars.RoleSuperadmin}
	anyRole = []string{constvars.RolePatient, constvars.RoleDoctor, constvars.RoleAdmin, constvars.RoleSuperadmin}
)

type routeRule struct {
	roles  []string
	method string
	path   string
}

var routeRules = []routeRule{
	{anyRole, "^(GET|PUT)$", "/users/me"},

	{[]string{constvars.RolePatient}, "^(GET|POST)$", "/patient/addresses"},
	{[]string{constvars.RolePatient}, "^(PUT|DELETE)$", "/patient/addresses/:addressID"},
	{[]string{constvars.RolePatient}, "^(GET|POST)$", "/patient/appointments"},
	{[]string{constvars.RolePatient}, "^GET$", "/patient/appointments/:appointmentID"},
	{[]string{constvars.RolePatient}, "^PUT$", "/patient/appointments/:appointmentID/reschedule"},
	{[]string{constvars.RolePatient}, "^PUT$", "/patient/appointments/:appointmentID/cancel"},
	{[]string{constvars.RolePatient}, "^POST$", "/patient/appointments/:appointmentID/payments"},
	{[]string{constvars.RolePatient}, "^POST$", "/patient/appointments/:appointmentID/feedback"},
	{[]string{constvars.RolePatient}, "^GET$", "/patient/payments"},
	{[]string{constvars.RolePatient}, "^GET$", "/patient/payments/:paymentID/receipt"},
	{[]string{constvars.RolePatient}, "^GET$", "/patient/feedback"},

	{[]string{constvars.RoleDoctor}, "^GET$", "/doctor/requests"},
	{[]string{constvars.RoleDoctor}, "^POST$", "/doctor/requests/:appointmentID/accept"},
	{[]string{constvars.RoleDoctor}, "^POST$", "/doctor/requests/:appointmentID/decline"},
	{[]string{constvars.RoleDoctor}, "^GET$", "/doctor/appointments"},
	{[]string{constvars.RoleDoctor}, "^GET$", "/doctor/appointments/:appointmentID"},
	{[]string{constvars.RoleDoctor}, "^PUT$", "/doctor/appointments/:appointmentID/status"},
	{[]string{constvars.RoleDoctor}, "^PUT$", "/doctor/availability"},
	{[]string{constvars.RoleDoctor}, "^GET$", "/doctor/earnings"},
	{[]string{constvars.RoleDoctor}, "^GET$", "/doctor/feedback"},

	{staff, "^(GET|POST)$", "/admin/users"},
	{staff, "^(GET|PUT|DELETE)$", "/admin/users/:userID"},
	{staff, "^POST$", "/admin/services"},
	{staff, "^(PUT|DELETE)$", "/admin/services/:serviceID"},
	{staff, "^POST$", "/admin/offers"},
	{staff, "^(PUT|DELETE)$", "/admin/offers/:offerID"},
	{staff, "^GET$", "/admin/appointments"},

	{[]string{constvars.RoleSuperadmin}, "^GET$", "/superadmin/overview"},
}

// DefaultPermissions expands the route table under basePath, e.g. "/api/v1".
func DefaultPermissions(basePath string) []Permission {
	basePath = strings.TrimRight(basePath, "/")
	var permissions []Permission
	for _, rule := range routeRules {
		for _, role := range rule.roles {
			permissions = append(permissions, Permission{
				Role:   role,
				Method: rule.method,
				Path:   basePath + rule.path,
			})
		}
	}
	return permissions
}

// NewEnforcer builds an in-memory enforcer loaded with DefaultPermissions.
func NewEnforcer(basePath string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	var lines strings.Builder
	for _, permission := range DefaultPermissions(basePath) {
		fmt.Fprintf(&lines, "p, %s, %s, %s\n", permission.Role, permission.Method, permission.Path)
	}

	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(lines.String()))
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}
	return enforcer, nil
}
