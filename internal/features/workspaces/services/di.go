package workspaces_services

import (
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
)

var workspaceService = &WorkspaceService{
	workspaceRepository:  workspaces_repositories.GetWorkspaceRepository(),
	membershipRepository: workspaces_repositories.GetMembershipRepository(),
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}
