package users_enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_WorkspaceRole_RankHierarchy(t *testing.T) {
	assert.True(t, WorkspaceRoleViewer.Rank() < WorkspaceRoleMember.Rank())
	assert.True(t, WorkspaceRoleMember.Rank() < WorkspaceRoleAdmin.Rank())
}

func Test_WorkspaceRole_HasAtLeast_Monotonic(t *testing.T) {
	roles := []WorkspaceRole{WorkspaceRoleViewer, WorkspaceRoleMember, WorkspaceRoleAdmin}

	// anything that grants member or admin access also grants viewer
	// access, never the reverse
	for _, role := range roles {
		if role.HasAtLeast(WorkspaceRoleMember) {
			assert.True(t, role.HasAtLeast(WorkspaceRoleViewer))
		}
		if role.HasAtLeast(WorkspaceRoleAdmin) {
			assert.True(t, role.HasAtLeast(WorkspaceRoleMember))
			assert.True(t, role.HasAtLeast(WorkspaceRoleViewer))
		}
	}

	assert.False(t, WorkspaceRoleViewer.HasAtLeast(WorkspaceRoleMember))
	assert.False(t, WorkspaceRoleViewer.HasAtLeast(WorkspaceRoleAdmin))
	assert.False(t, WorkspaceRoleMember.HasAtLeast(WorkspaceRoleAdmin))
}

func Test_WorkspaceRole_UnknownRoleGrantsNothing(t *testing.T) {
	unknown := WorkspaceRole("WORKSPACE_SUPERUSER")

	assert.False(t, unknown.IsValid())
	assert.False(t, unknown.HasAtLeast(WorkspaceRoleViewer))
}
