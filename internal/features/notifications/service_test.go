package notifications

import (
	"testing"
	"time"

	users_testing "taskhive-backend/internal/features/users/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CleanupReadNotifications_RemovesOnlyOldReadOnes(t *testing.T) {
	user := users_testing.CreateTestUser()
	repository := &NotificationRepository{}
	service := &NotificationService{notificationRepository: repository}

	oldRead := &Notification{
		ID:          uuid.New(),
		UserID:      user.UserID,
		WorkspaceID: uuid.New(),
		Type:        NotificationTypeAssignment,
		Message:     "old and read",
		IsRead:      true,
		CreatedAt:   time.Now().UTC().Add(-100 * 24 * time.Hour),
	}
	oldUnread := &Notification{
		ID:          uuid.New(),
		UserID:      user.UserID,
		WorkspaceID: uuid.New(),
		Type:        NotificationTypeAssignment,
		Message:     "old but unread",
		IsRead:      false,
		CreatedAt:   time.Now().UTC().Add(-100 * 24 * time.Hour),
	}
	fresh := &Notification{
		ID:          uuid.New(),
		UserID:      user.UserID,
		WorkspaceID: uuid.New(),
		Type:        NotificationTypeUpdate,
		Message:     "fresh and read",
		IsRead:      true,
		CreatedAt:   time.Now().UTC(),
	}

	require.NoError(
		t,
		repository.InsertNotifications([]*Notification{oldRead, oldUnread, fresh}),
	)

	service.CleanupReadNotifications(90 * 24 * time.Hour)

	remaining, err := repository.GetByUserID(user.UserID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	ids := []uuid.UUID{remaining[0].ID, remaining[1].ID}
	assert.Contains(t, ids, oldUnread.ID)
	assert.Contains(t, ids, fresh.ID)
	assert.NotContains(t, ids, oldRead.ID)
}
