package notifications

import (
	"time"

	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
)

const listLimit = 50

type NotificationRepository struct{}

func (r *NotificationRepository) InsertNotifications(notifications []*Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	return storage.GetDb().Create(&notifications).Error
}

func (r *NotificationRepository) GetByUserID(userID uuid.UUID) ([]Notification, error) {
	var notifications []Notification

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(listLimit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkAsRead flips the read flag for a notification owned by the user.
// Returns the number of rows touched so the caller can distinguish
// missing from foreign notifications.
func (r *NotificationRepository) MarkAsRead(
	notificationID uuid.UUID,
	userID uuid.UUID,
) (int64, error) {
	result := storage.GetDb().
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)

	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&Notification{})

	return result.RowsAffected, result.Error
}
