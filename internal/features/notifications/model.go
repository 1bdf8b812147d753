package notifications

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeAssignment NotificationType = "assignment"
	NotificationTypeMention    NotificationType = "mention"
	NotificationTypeUpdate     NotificationType = "update"
	NotificationTypeCompletion NotificationType = "completion"
)

type Notification struct {
	ID          uuid.UUID        `json:"id"          gorm:"primaryKey;type:uuid;column:id"`
	UserID      uuid.UUID        `json:"userId"      gorm:"type:uuid;column:user_id;not null"`
	WorkspaceID uuid.UUID        `json:"workspaceId" gorm:"type:uuid;column:workspace_id;not null"`
	TaskID      *uuid.UUID       `json:"taskId"      gorm:"type:uuid;column:task_id"`
	Type        NotificationType `json:"type"        gorm:"column:type;not null"`
	Message     string           `json:"message"     gorm:"column:message;not null"`
	IsRead      bool             `json:"isRead"      gorm:"column:is_read;not null;default:false"`
	CreatedAt   time.Time        `json:"createdAt"   gorm:"column:created_at;not null"`
}

func (n *Notification) TableName() string {
	return "notifications"
}
