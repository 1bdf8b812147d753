package users_enums

type WorkspaceRole string

const (
	WorkspaceRoleAdmin  WorkspaceRole = "WORKSPACE_ADMIN"
	WorkspaceRoleMember WorkspaceRole = "WORKSPACE_MEMBER"
	WorkspaceRoleViewer WorkspaceRole = "WORKSPACE_VIEWER"
)

// IsValid validates the WorkspaceRole
func (r WorkspaceRole) IsValid() bool {
	switch r {
	case WorkspaceRoleAdmin, WorkspaceRoleMember, WorkspaceRoleViewer:
		return true
	default:
		return false
	}
}

// Rank orders roles for permission comparison: viewer < member < admin.
// An unknown role ranks below every valid one.
func (r WorkspaceRole) Rank() int {
	switch r {
	case WorkspaceRoleViewer:
		return 1
	case WorkspaceRoleMember:
		return 2
	case WorkspaceRoleAdmin:
		return 3
	default:
		return 0
	}
}

// HasAtLeast reports whether the role grants everything the required
// role grants.
func (r WorkspaceRole) HasAtLeast(required WorkspaceRole) bool {
	return r.Rank() >= required.Rank() && required.Rank() > 0
}
