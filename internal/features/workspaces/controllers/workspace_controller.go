package workspaces_controllers

import (
	"net/http"

	users_middleware "taskhive-backend/internal/features/users/middleware"
	workspaces_dto "taskhive-backend/internal/features/workspaces/dto"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceController struct {
	workspaceService *workspaces_services.WorkspaceService
}

func (c *WorkspaceController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/workspaces", c.CreateWorkspace)
	router.GET("/workspaces", c.GetUserWorkspaces)
	router.GET("/workspaces/:id", c.GetWorkspace)
	router.PUT("/workspaces/:id/settings", c.UpdateWorkspaceSettings)
	router.POST("/workspaces/:id/regenerate-code", c.RegenerateInviteCode)
	router.DELETE("/workspaces/:id", c.DeleteWorkspace)
	router.POST("/workspaces/join/:inviteCode", c.JoinWorkspace)
}

// CreateWorkspace
// @Summary Create a workspace
// @Description Create a workspace and become its admin
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body workspaces_dto.CreateWorkspaceRequestDTO true "Workspace data"
// @Success 201 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Router /workspaces [post]
func (c *WorkspaceController) CreateWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request workspaces_dto.CreateWorkspaceRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.workspaceService.CreateWorkspace(&request, user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workspace"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// GetUserWorkspaces
// @Summary List workspaces the user belongs to
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} workspaces_dto.ListWorkspacesResponseDTO
// @Router /workspaces [get]
func (c *WorkspaceController) GetUserWorkspaces(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.workspaceService.GetUserWorkspaces(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workspaces"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetWorkspace
// @Summary Get a workspace with its members
// @Description Members only; the invite code is included for admins
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} workspaces_dto.WorkspaceViewResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id} [get]
func (c *WorkspaceController) GetWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	response, err := c.workspaceService.GetWorkspaceView(workspaceID, user)
	if err != nil {
		switch err.Error() {
		case "workspace not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "access denied":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get workspace"})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateWorkspaceSettings
// @Summary Update workspace name, description or settings
// @Description Admin only; omitted fields are left unchanged
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body workspaces_dto.UpdateWorkspaceSettingsRequestDTO true "Fields to update"
// @Success 200 {object} workspaces_models.Workspace
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/settings [put]
func (c *WorkspaceController) UpdateWorkspaceSettings(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	var request workspaces_dto.UpdateWorkspaceSettingsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	workspace, err := c.workspaceService.UpdateWorkspaceSettings(workspaceID, &request, user)
	if err != nil {
		switch err.Error() {
		case "workspace not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "admin access required":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update workspace"})
		}
		return
	}

	ctx.JSON(http.StatusOK, workspace)
}

// RegenerateInviteCode
// @Summary Regenerate the workspace invite code
// @Description Admin only; the previous code stops working immediately
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} workspaces_dto.RegenerateInviteCodeResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/regenerate-code [post]
func (c *WorkspaceController) RegenerateInviteCode(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	response, err := c.workspaceService.RegenerateInviteCode(workspaceID, user)
	if err != nil {
		switch err.Error() {
		case "workspace not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "admin access required":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate invite code"})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteWorkspace
// @Summary Delete a workspace
// @Description Only the workspace owner can delete it
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id} [delete]
func (c *WorkspaceController) DeleteWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	if err := c.workspaceService.DeleteWorkspace(workspaceID, user); err != nil {
		switch err.Error() {
		case "workspace not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "only the workspace owner can delete the workspace":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete workspace"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Workspace deleted"})
}

// JoinWorkspace
// @Summary Join a workspace by invite code
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param inviteCode path string true "Invite code"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/join/{inviteCode} [post]
func (c *WorkspaceController) JoinWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.workspaceService.JoinWorkspace(ctx.Param("inviteCode"), user)
	if err != nil {
		switch err.Error() {
		case "invalid invite code":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "you are already a member of this workspace":
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join workspace"})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}
