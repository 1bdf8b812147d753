package realtime

import (
	"github.com/google/uuid"
)

// Event names pushed to connected clients.
const (
	EventTaskCreated    = "taskCreated"
	EventTaskUpdated    = "taskUpdated"
	EventTaskDeleted    = "taskDeleted"
	EventCommentAdded   = "commentAdded"
	EventCommentDeleted = "commentDeleted"
	EventNotification   = "notification"
)

// EventBroadcaster pushes events to realtime subscribers. Delivery is
// fire-and-forget: a mutation must never fail because a push did.
type EventBroadcaster interface {
	BroadcastToWorkspace(workspaceID uuid.UUID, event string, payload any)
	BroadcastToUser(userID uuid.UUID, event string, payload any)
}
