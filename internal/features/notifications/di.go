package notifications

import (
	"taskhive-backend/internal/features/realtime"
)

var notificationRepository = &NotificationRepository{}

var notificationService = &NotificationService{
	notificationRepository: notificationRepository,
}

var notificationController = &NotificationController{
	notificationService: notificationService,
}

var notificationCleanupService = &NotificationCleanupService{
	notificationService: notificationService,
}

func GetNotificationService() *NotificationService {
	return notificationService
}

func GetNotificationController() *NotificationController {
	return notificationController
}

func GetNotificationCleanupService() *NotificationCleanupService {
	return notificationCleanupService
}

// SetupDependencies wires the realtime hub in after all singletons
// exist, avoiding init-order cycles between features.
func SetupDependencies() {
	notificationService.SetEventBroadcaster(realtime.GetHub())
}
