package workspaces_models

import (
	"time"

	"github.com/google/uuid"
)

type WorkspaceSettings struct {
	IsPublic     bool `json:"isPublic"     gorm:"column:is_public"`
	AllowInvites bool `json:"allowInvites" gorm:"column:allow_invites"`
}

type Workspace struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`

	// OwnerID is set at creation and never changes; only the owner may
	// delete the workspace.
	OwnerID uuid.UUID `json:"ownerId" gorm:"column:owner_id"`

	// InviteCode is globally unique while set. Regenerating it
	// invalidates the previous code immediately.
	InviteCode *string `json:"-" gorm:"column:invite_code"`

	Settings  WorkspaceSettings `json:"settings"  gorm:"embedded"`
	CreatedAt time.Time         `json:"createdAt" gorm:"column:created_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
