package notifications_test

import (
	"testing"

	"taskhive-backend/internal/features/notifications"
	"taskhive-backend/internal/features/tasks"
	users_testing "taskhive-backend/internal/features/users/testing"
	workspaces_testing "taskhive-backend/internal/features/workspaces/testing"
	test_utils "taskhive-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationListResponse struct {
	Notifications []notifications.Notification `json:"notifications"`
}

func createTestRouter() *gin.Engine {
	return workspaces_testing.CreateTestRouter(
		notifications.GetNotificationController(),
		tasks.GetTaskController(),
	)
}

func Test_GetNotifications_AssignmentNotificationCreated(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	assignee := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)
	workspaces_testing.JoinTestWorkspace(*workspace.InviteCode, assignee.Token)

	var task tasks.Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		tasks.CreateTaskRequestDTO{
			Title:       "Review the proposal",
			WorkspaceID: workspace.ID,
			Assignees:   []uuid.UUID{assignee.UserID},
		},
		201,
		&task,
	)

	var list notificationListResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications",
		"Bearer "+assignee.Token,
		200,
		&list,
	)

	require.Len(t, list.Notifications, 1)
	notification := list.Notifications[0]
	assert.Equal(t, notifications.NotificationTypeAssignment, notification.Type)
	assert.Equal(t, assignee.UserID, notification.UserID)
	assert.Equal(t, workspace.ID, notification.WorkspaceID)
	require.NotNil(t, notification.TaskID)
	assert.Equal(t, task.ID, *notification.TaskID)
	assert.Contains(t, notification.Message, "Review the proposal")
	assert.False(t, notification.IsRead)

	// the creator assigned nobody to themselves
	var ownerList notificationListResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications",
		"Bearer "+owner.Token,
		200,
		&ownerList,
	)
	assert.Empty(t, ownerList.Notifications)
}

func Test_MarkAsRead_OwnNotification(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	assignee := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)
	workspaces_testing.JoinTestWorkspace(*workspace.InviteCode, assignee.Token)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		tasks.CreateTaskRequestDTO{
			Title:       "Read me",
			WorkspaceID: workspace.ID,
			Assignees:   []uuid.UUID{assignee.UserID},
		},
		201,
	)

	var list notificationListResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications",
		"Bearer "+assignee.Token,
		200,
		&list,
	)
	require.Len(t, list.Notifications, 1)

	notificationURL := "/api/v1/notifications/" + list.Notifications[0].ID.String() + "/read"

	// another user cannot touch it
	test_utils.MakePutRequest(t, router, notificationURL, "Bearer "+owner.Token, nil, 404)

	test_utils.MakePutRequest(t, router, notificationURL, "Bearer "+assignee.Token, nil, 200)

	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications",
		"Bearer "+assignee.Token,
		200,
		&list,
	)
	require.Len(t, list.Notifications, 1)
	assert.True(t, list.Notifications[0].IsRead)
}

func Test_MarkAsRead_UnknownNotification(t *testing.T) {
	router := createTestRouter()
	user := users_testing.CreateTestUser()

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/notifications/"+uuid.New().String()+"/read",
		"Bearer "+user.Token,
		nil,
		404,
	)
}
