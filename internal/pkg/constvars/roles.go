package constvars

const (
	RolePatient    = "patient"
	RoleDoctor     = "doctor"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// RoleRank orders roles by privilege. Patient and doctor share the lowest tier.
var RoleRank = map[string]int{
	RolePatient:    1,
	RoleDoctor:     1,
	RoleAdmin:      2,
	RoleSuperadmin: 3,
}

func IsKnownRole(role string) bool {
	_, ok := RoleRank[role]
	return ok
}
