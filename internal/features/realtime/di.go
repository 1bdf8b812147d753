package realtime

import (
	users_services "taskhive-backend/internal/features/users/services"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"
)

var hub = NewHub(workspaces_services.GetWorkspaceService())

var realtimeController = &RealtimeController{
	hub:         hub,
	userService: users_services.GetUserService(),
}

func GetHub() *Hub {
	return hub
}

func GetRealtimeController() *RealtimeController {
	return realtimeController
}
