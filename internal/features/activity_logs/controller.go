package activity_logs

import (
	"net/http"

	users_middleware "taskhive-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityLogController struct {
	activityLogService *ActivityLogService
}

func (c *ActivityLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity-logs/task/:taskId", c.GetTaskActivity)
}

// GetTaskActivity
// @Summary Activity history of a task
// @Description Workspace members only; newest entries first
// @Tags activity-logs
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string][]ActivityLogEntry
// @Failure 403 {object} map[string]string
// @Router /activity-logs/task/{taskId} [get]
func (c *ActivityLogController) GetTaskActivity(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	entries, err := c.activityLogService.GetTaskActivity(taskID, user)
	if err != nil {
		if err.Error() == "access denied" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get task activity"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"activities": entries})
}
