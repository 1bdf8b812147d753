package tasks

import (
	"taskhive-backend/internal/features/activity_logs"
	"taskhive-backend/internal/features/files"
	"taskhive-backend/internal/features/notifications"
	"taskhive-backend/internal/features/realtime"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"
)

var taskRepository = &TaskRepository{}

var taskService = &TaskService{
	taskRepository:      taskRepository,
	workspaceService:    workspaces_services.GetWorkspaceService(),
	activityLogService:  activity_logs.GetActivityLogService(),
	notificationService: notifications.GetNotificationService(),
	fileStorage:         files.GetFileStorage(),
}

var taskController = &TaskController{
	taskService: taskService,
}

func GetTaskService() *TaskService {
	return taskService
}

func GetTaskController() *TaskController {
	return taskController
}

// SetupDependencies attaches the realtime hub and registers the task
// cleanup hook for workspace deletion.
func SetupDependencies() {
	taskService.SetEventBroadcaster(realtime.GetHub())
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(taskService)
}
