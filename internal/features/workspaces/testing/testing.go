package workspaces_testing

import (
	users_middleware "taskhive-backend/internal/features/users/middleware"
	users_services "taskhive-backend/internal/features/users/services"
	workspaces_dto "taskhive-backend/internal/features/workspaces/dto"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CreateTestRouter mounts the given controllers behind the auth
// middleware, the way main wires them.
func CreateTestRouter(controllers ...RouteRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/api/v1")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

// CreateTestWorkspace creates a workspace owned by the given user and
// returns it with the invite code populated.
func CreateTestWorkspace(userToken string) *workspaces_dto.WorkspaceResponseDTO {
	user, err := users_services.GetUserService().GetUserFromToken(userToken)
	if err != nil {
		panic("Failed to resolve test user from token: " + err.Error())
	}

	request := &workspaces_dto.CreateWorkspaceRequestDTO{
		Name:        "Test Workspace " + uuid.New().String()[:8],
		Description: "Workspace created for tests",
	}

	workspace, err := workspaces_services.GetWorkspaceService().CreateWorkspace(request, user)
	if err != nil {
		panic("Failed to create test workspace: " + err.Error())
	}

	return workspace
}

// JoinTestWorkspace adds the user behind the token to the workspace as
// a regular member.
func JoinTestWorkspace(inviteCode string, userToken string) {
	user, err := users_services.GetUserService().GetUserFromToken(userToken)
	if err != nil {
		panic("Failed to resolve test user from token: " + err.Error())
	}

	if _, err := workspaces_services.GetWorkspaceService().JoinWorkspace(inviteCode, user); err != nil {
		panic("Failed to join test workspace: " + err.Error())
	}
}
