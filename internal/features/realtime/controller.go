package realtime

import (
	"net/http"

	users_services "taskhive-backend/internal/features/users/services"
	"taskhive-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type RealtimeController struct {
	hub         *Hub
	userService *users_services.UserService
}

func (c *RealtimeController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", c.HandleConnection)
}

// HandleConnection
// @Summary Open a realtime event stream
// @Description Upgrades to WebSocket; authenticate with the token query parameter
// @Tags realtime
// @Param token query string true "Access token"
// @Success 101
// @Failure 401 {object} map[string]string
// @Router /ws [get]
func (c *RealtimeController) HandleConnection(ctx *gin.Context) {
	// browsers cannot set headers on WebSocket upgrades, so the token
	// arrives as a query parameter
	token := ctx.Query("token")
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	user, err := c.userService.GetUserFromToken(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.GetLogger().Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := NewClient(c.hub, conn, user.ID)
	c.hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
