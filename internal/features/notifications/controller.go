package notifications

import (
	"net/http"

	users_middleware "taskhive-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationController struct {
	notificationService *NotificationService
}

func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", c.GetNotifications)
	router.PUT("/notifications/:id/read", c.MarkAsRead)
}

// GetNotifications
// @Summary List the user's latest notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]Notification
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notifications, err := c.notificationService.GetUserNotifications(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkAsRead
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := c.notificationService.MarkNotificationRead(notificationID, user); err != nil {
		if err.Error() == "notification not found" {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
