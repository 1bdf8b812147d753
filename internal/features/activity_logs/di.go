package activity_logs

import (
	workspaces_services "taskhive-backend/internal/features/workspaces/services"
)

var activityLogRepository = &ActivityLogRepository{}

var activityLogService = &ActivityLogService{
	activityLogRepository: activityLogRepository,
	workspaceService:      workspaces_services.GetWorkspaceService(),
}

var activityLogController = &ActivityLogController{
	activityLogService: activityLogService,
}

func GetActivityLogService() *ActivityLogService {
	return activityLogService
}

func GetActivityLogController() *ActivityLogController {
	return activityLogController
}
