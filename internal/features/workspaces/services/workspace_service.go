package workspaces_services

import (
	"errors"
	"fmt"
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"
	users_models "taskhive-backend/internal/features/users/models"
	workspaces_dto "taskhive-backend/internal/features/workspaces/dto"
	workspaces_interfaces "taskhive-backend/internal/features/workspaces/interfaces"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	"taskhive-backend/internal/util/logger"
	tokens_utils "taskhive-backend/internal/util/tokens"

	"github.com/google/uuid"
)

const inviteCodeGenerationAttempts = 5

type WorkspaceService struct {
	workspaceRepository        *workspaces_repositories.WorkspaceRepository
	membershipRepository       *workspaces_repositories.MembershipRepository
	workspaceDeletionListeners []workspaces_interfaces.WorkspaceDeletionListener
}

func (s *WorkspaceService) AddWorkspaceDeletionListener(
	listener workspaces_interfaces.WorkspaceDeletionListener,
) {
	s.workspaceDeletionListeners = append(s.workspaceDeletionListeners, listener)
}

func (s *WorkspaceService) CreateWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	inviteCode, err := s.generateUniqueInviteCode()
	if err != nil {
		return nil, err
	}

	workspace := &workspaces_models.Workspace{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		OwnerID:     creator.ID,
		InviteCode:  &inviteCode,
		Settings: workspaces_models.WorkspaceSettings{
			IsPublic:     false,
			AllowInvites: true,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.workspaceRepository.CreateWorkspace(workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	membership := &workspaces_models.WorkspaceMembership{
		UserID:      creator.ID,
		WorkspaceID: workspace.ID,
		Role:        users_enums.WorkspaceRoleAdmin,
		JoinedAt:    time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create workspace membership: %w", err)
	}

	return &workspaces_dto.WorkspaceResponseDTO{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		Role:        users_enums.WorkspaceRoleAdmin,
		InviteCode:  workspace.InviteCode,
	}, nil
}

func (s *WorkspaceService) GetUserWorkspaces(
	user *users_models.User,
) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	workspaces, err := s.membershipRepository.GetWorkspacesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user workspaces: %w", err)
	}

	return &workspaces_dto.ListWorkspacesResponseDTO{
		Workspaces: workspaces,
	}, nil
}

func (s *WorkspaceService) JoinWorkspace(
	inviteCode string,
	user *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByInviteCode(inviteCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if workspace == nil {
		return nil, errors.New("invalid invite code")
	}

	isMember, err := s.IsWorkspaceMember(workspace.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, errors.New("you are already a member of this workspace")
	}

	membership := &workspaces_models.WorkspaceMembership{
		UserID:      user.ID,
		WorkspaceID: workspace.ID,
		Role:        users_enums.WorkspaceRoleMember,
		JoinedAt:    time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to join workspace: %w", err)
	}

	return &workspaces_dto.WorkspaceResponseDTO{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		Role:        users_enums.WorkspaceRoleMember,
	}, nil
}

func (s *WorkspaceService) GetWorkspaceView(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_dto.WorkspaceViewResponseDTO, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, errors.New("workspace not found")
	}

	role, err := s.GetUserWorkspaceRole(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errors.New("access denied")
	}

	members, err := s.membershipRepository.GetWorkspaceMembers(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace members: %w", err)
	}

	// the invite code is confidential: only admins ever see it
	var inviteCode *string
	if role.HasAtLeast(users_enums.WorkspaceRoleAdmin) {
		inviteCode = workspace.InviteCode
	}

	return &workspaces_dto.WorkspaceViewResponseDTO{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		OwnerID:     workspace.OwnerID,
		Members:     members,
		UserRole:    *role,
		InviteCode:  inviteCode,
		Settings:    workspace.Settings,
		CreatedAt:   workspace.CreatedAt,
	}, nil
}

func (s *WorkspaceService) UpdateWorkspaceSettings(
	workspaceID uuid.UUID,
	request *workspaces_dto.UpdateWorkspaceSettingsRequestDTO,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, errors.New("workspace not found")
	}

	hasPermission, err := s.HasWorkspacePermission(
		workspaceID,
		user.ID,
		users_enums.WorkspaceRoleAdmin,
	)
	if err != nil {
		return nil, err
	}
	if !hasPermission {
		return nil, errors.New("admin access required")
	}

	// shallow patch: absent fields keep their current values
	if request.Name != nil {
		workspace.Name = *request.Name
	}
	if request.Description != nil {
		workspace.Description = *request.Description
	}
	if request.Settings != nil {
		workspace.Settings = *request.Settings
	}

	if err := s.workspaceRepository.UpdateWorkspace(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return workspace, nil
}

func (s *WorkspaceService) RegenerateInviteCode(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_dto.RegenerateInviteCodeResponseDTO, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, errors.New("workspace not found")
	}

	hasPermission, err := s.HasWorkspacePermission(
		workspaceID,
		user.ID,
		users_enums.WorkspaceRoleAdmin,
	)
	if err != nil {
		return nil, err
	}
	if !hasPermission {
		return nil, errors.New("admin access required")
	}

	inviteCode, err := s.generateUniqueInviteCode()
	if err != nil {
		return nil, err
	}

	workspace.InviteCode = &inviteCode
	if err := s.workspaceRepository.UpdateWorkspace(workspace); err != nil {
		return nil, fmt.Errorf("failed to regenerate invite code: %w", err)
	}

	return &workspaces_dto.RegenerateInviteCodeResponseDTO{
		InviteCode: inviteCode,
	}, nil
}

func (s *WorkspaceService) DeleteWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) error {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return errors.New("workspace not found")
	}

	// deletion is stricter than admin: only the owner may do it
	if workspace.OwnerID != user.ID {
		return errors.New("only the workspace owner can delete the workspace")
	}

	for _, listener := range s.workspaceDeletionListeners {
		if err := listener.OnBeforeWorkspaceDeletion(workspaceID); err != nil {
			logger.GetLogger().
				Error("Workspace deletion listener failed", "workspaceId", workspaceID, "error", err)
		}
	}

	if err := s.membershipRepository.RemoveWorkspaceMemberships(workspaceID); err != nil {
		return fmt.Errorf("failed to remove workspace memberships: %w", err)
	}

	if err := s.workspaceRepository.DeleteWorkspace(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}

// GetUserWorkspaceRole is the authorization primitive every task and
// workspace operation builds on. Non-membership is reported as a nil
// role, never as an error.
func (s *WorkspaceService) GetUserWorkspaceRole(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (*users_enums.WorkspaceRole, error) {
	return s.membershipRepository.GetUserWorkspaceRole(workspaceID, userID)
}

func (s *WorkspaceService) IsWorkspaceMember(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (bool, error) {
	role, err := s.GetUserWorkspaceRole(workspaceID, userID)
	if err != nil {
		return false, err
	}

	return role != nil, nil
}

func (s *WorkspaceService) HasWorkspacePermission(
	workspaceID uuid.UUID,
	userID uuid.UUID,
	required users_enums.WorkspaceRole,
) (bool, error) {
	role, err := s.GetUserWorkspaceRole(workspaceID, userID)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}

	return role.HasAtLeast(required), nil
}

func (s *WorkspaceService) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	return s.workspaceRepository.GetWorkspaceByID(workspaceID)
}

// generateUniqueInviteCode retries on the unlikely collision with an
// existing code; the unique index on invite_code is the backstop.
func (s *WorkspaceService) generateUniqueInviteCode() (string, error) {
	for range inviteCodeGenerationAttempts {
		code := tokens_utils.GenerateInviteCode()

		existing, err := s.workspaceRepository.GetWorkspaceByInviteCode(code)
		if err != nil {
			return "", fmt.Errorf("failed to check invite code uniqueness: %w", err)
		}

		if existing == nil {
			return code, nil
		}
	}

	return "", errors.New("failed to generate a unique invite code")
}
