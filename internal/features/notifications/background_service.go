package notifications

import (
	"time"

	"taskhive-backend/internal/util/logger"

	"github.com/robfig/cron/v3"
)

const readNotificationRetention = 90 * 24 * time.Hour

// NotificationCleanupService prunes old read notifications on a
// daily schedule.
type NotificationCleanupService struct {
	notificationService *NotificationService
	cron                *cron.Cron
}

func (s *NotificationCleanupService) Run() {
	s.cron = cron.New()

	_, err := s.cron.AddFunc("0 3 * * *", func() {
		s.notificationService.CleanupReadNotifications(readNotificationRetention)
	})
	if err != nil {
		logger.GetLogger().Error("Failed to schedule notification cleanup", "error", err)
		return
	}

	s.cron.Start()
	logger.GetLogger().Info("Notification cleanup scheduled")
}

func (s *NotificationCleanupService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
