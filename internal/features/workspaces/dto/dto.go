package workspaces_dto

import (
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

type CreateWorkspaceRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type WorkspaceResponseDTO struct {
	ID          uuid.UUID                 `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Role        users_enums.WorkspaceRole `json:"role"`

	// InviteCode is populated only in responses addressed to admins.
	InviteCode *string `json:"inviteCode,omitempty"`
}

type WorkspaceListItemDTO struct {
	ID          uuid.UUID                 `json:"id"          gorm:"column:id"`
	Name        string                    `json:"name"        gorm:"column:name"`
	Description string                    `json:"description" gorm:"column:description"`
	Role        users_enums.WorkspaceRole `json:"role"        gorm:"column:role"`
	MemberCount int64                     `json:"memberCount" gorm:"column:member_count"`
	IsOwner     bool                      `json:"isOwner"     gorm:"column:is_owner"`
}

type ListWorkspacesResponseDTO struct {
	Workspaces []WorkspaceListItemDTO `json:"workspaces"`
}

type WorkspaceMemberResponseDTO struct {
	UserID   uuid.UUID                 `json:"userId"   gorm:"column:user_id"`
	Email    string                    `json:"email"    gorm:"column:email"`
	Name     string                    `json:"name"     gorm:"column:name"`
	Avatar   string                    `json:"avatar"   gorm:"column:avatar"`
	Role     users_enums.WorkspaceRole `json:"role"     gorm:"column:role"`
	JoinedAt time.Time                 `json:"joinedAt" gorm:"column:joined_at"`
}

type WorkspaceViewResponseDTO struct {
	ID          uuid.UUID                          `json:"id"`
	Name        string                             `json:"name"`
	Description string                             `json:"description"`
	OwnerID     uuid.UUID                          `json:"ownerId"`
	Members     []WorkspaceMemberResponseDTO       `json:"members"`
	UserRole    users_enums.WorkspaceRole          `json:"userRole"`
	InviteCode  *string                            `json:"inviteCode"`
	Settings    workspaces_models.WorkspaceSettings `json:"settings"`
	CreatedAt   time.Time                          `json:"createdAt"`
}

type UpdateWorkspaceSettingsRequestDTO struct {
	Name        *string                              `json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string                              `json:"description" binding:"omitempty,max=500"`
	Settings    *workspaces_models.WorkspaceSettings `json:"settings"`
}

type RegenerateInviteCodeResponseDTO struct {
	InviteCode string `json:"inviteCode"`
}
