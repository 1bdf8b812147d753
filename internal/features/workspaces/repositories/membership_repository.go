package workspaces_repositories

import (
	"errors"
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"
	workspaces_dto "taskhive-backend/internal/features/workspaces/dto"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(
	membership *workspaces_models.WorkspaceMembership,
) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

// GetUserWorkspaceRole returns nil when the user is not a member. The
// membership table is the single source of truth for workspace access.
func (r *MembershipRepository) GetUserWorkspaceRole(
	workspaceID, userID uuid.UUID,
) (*users_enums.WorkspaceRole, error) {
	var membership workspaces_models.WorkspaceMembership

	err := storage.GetDb().
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership.Role, nil
}

func (r *MembershipRepository) GetWorkspaceMembers(
	workspaceID uuid.UUID,
) ([]workspaces_dto.WorkspaceMemberResponseDTO, error) {
	members := make([]workspaces_dto.WorkspaceMemberResponseDTO, 0)

	err := storage.GetDb().
		Table("workspace_memberships wm").
		Select("wm.user_id, u.email, u.name, u.avatar, wm.role, wm.joined_at").
		Joins("JOIN users u ON wm.user_id = u.id").
		Where("wm.workspace_id = ?", workspaceID).
		Order("wm.joined_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) GetWorkspacesByUserID(
	userID uuid.UUID,
) ([]workspaces_dto.WorkspaceListItemDTO, error) {
	results := make([]workspaces_dto.WorkspaceListItemDTO, 0)

	err := storage.GetDb().
		Table("workspaces w").
		Select(`w.id, w.name, w.description, wm.role,
			w.owner_id = wm.user_id AS is_owner,
			(SELECT COUNT(*) FROM workspace_memberships m
				WHERE m.workspace_id = w.id) AS member_count`).
		Joins("JOIN workspace_memberships wm ON w.id = wm.workspace_id").
		Where("wm.user_id = ?", userID).
		Order("w.name ASC").
		Scan(&results).Error

	return results, err
}

func (r *MembershipRepository) RemoveWorkspaceMemberships(workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Delete(&workspaces_models.WorkspaceMembership{}).Error
}
