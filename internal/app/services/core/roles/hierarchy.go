package roles

import "homevisit-service/internal/pkg/constvars"

// CanManage reports whether actorRole may provision, modify or delete an
// account holding targetRole. Staff accounts are reserved to superadmins.
func CanManage(actorRole, targetRole string) bool {
	switch actorRole {
	case constvars.RoleSuperadmin:
		return true
	case constvars.RoleAdmin:
		return constvars.RoleRank[targetRole] < constvars.RoleRank[constvars.RoleAdmin]
	default:
		return false
	}
}
