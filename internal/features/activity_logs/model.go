package activity_logs

import (
	"time"

	"github.com/google/uuid"
)

type ActivityAction string

const (
	ActivityActionCreated        ActivityAction = "created"
	ActivityActionUpdated        ActivityAction = "updated"
	ActivityActionDeleted        ActivityAction = "deleted"
	ActivityActionCommented      ActivityAction = "commented"
	ActivityActionCommentDeleted ActivityAction = "comment deleted"
)

// ActivityLogEntry is an append-only record of a task mutation.
// Entries are never updated or removed, even when the task itself is
// deleted.
type ActivityLogEntry struct {
	ID          uuid.UUID      `json:"id"          bson:"_id"`
	UserID      uuid.UUID      `json:"userId"      bson:"user_id"`
	WorkspaceID uuid.UUID      `json:"workspaceId" bson:"workspace_id"`
	TaskID      uuid.UUID      `json:"taskId"      bson:"task_id"`
	Action      ActivityAction `json:"action"      bson:"action"`
	Details     string         `json:"details"     bson:"details"`
	CreatedAt   time.Time      `json:"createdAt"   bson:"created_at"`
}
