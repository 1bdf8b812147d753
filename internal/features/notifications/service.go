package notifications

import (
	"errors"
	"fmt"
	"time"

	"taskhive-backend/internal/features/realtime"
	users_models "taskhive-backend/internal/features/users/models"
	"taskhive-backend/internal/util/logger"

	"github.com/google/uuid"
)

type NotificationService struct {
	notificationRepository *NotificationRepository
	eventBroadcaster       realtime.EventBroadcaster
}

func (s *NotificationService) SetEventBroadcaster(broadcaster realtime.EventBroadcaster) {
	s.eventBroadcaster = broadcaster
}

// CreateAssignmentNotifications stores one notification per assignee
// and pushes each to the assignee's user room.
func (s *NotificationService) CreateAssignmentNotifications(
	assigneeIDs []uuid.UUID,
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	taskTitle string,
) error {
	if len(assigneeIDs) == 0 {
		return nil
	}

	notifications := make([]*Notification, 0, len(assigneeIDs))
	for _, assigneeID := range assigneeIDs {
		id := taskID
		notifications = append(notifications, &Notification{
			ID:          uuid.New(),
			UserID:      assigneeID,
			WorkspaceID: workspaceID,
			TaskID:      &id,
			Type:        NotificationTypeAssignment,
			Message:     fmt.Sprintf("You have been assigned a new task: %q", taskTitle),
			CreatedAt:   time.Now().UTC(),
		})
	}

	if err := s.notificationRepository.InsertNotifications(notifications); err != nil {
		return fmt.Errorf("failed to insert notifications: %w", err)
	}

	if s.eventBroadcaster != nil {
		for _, notification := range notifications {
			s.eventBroadcaster.BroadcastToUser(
				notification.UserID,
				realtime.EventNotification,
				notification,
			)
		}
	}

	return nil
}

func (s *NotificationService) GetUserNotifications(
	user *users_models.User,
) ([]Notification, error) {
	notifications, err := s.notificationRepository.GetByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	if notifications == nil {
		notifications = []Notification{}
	}

	return notifications, nil
}

func (s *NotificationService) MarkNotificationRead(
	notificationID uuid.UUID,
	user *users_models.User,
) error {
	affected, err := s.notificationRepository.MarkAsRead(notificationID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if affected == 0 {
		return errors.New("notification not found")
	}

	return nil
}

// CleanupReadNotifications removes read notifications older than the
// retention window.
func (s *NotificationService) CleanupReadNotifications(retention time.Duration) {
	cutoff := time.Now().UTC().Add(-retention)

	removed, err := s.notificationRepository.DeleteReadOlderThan(cutoff)
	if err != nil {
		logger.GetLogger().Error("Failed to clean up read notifications", "error", err)
		return
	}

	if removed > 0 {
		logger.GetLogger().Info("Cleaned up read notifications", "removed", removed)
	}
}
