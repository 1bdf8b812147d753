package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"taskhive-backend/internal/features/activity_logs"
	users_testing "taskhive-backend/internal/features/users/testing"
	workspaces_testing "taskhive-backend/internal/features/workspaces/testing"
	test_utils "taskhive-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRouter() *gin.Engine {
	return workspaces_testing.CreateTestRouter(
		GetTaskController(),
	)
}

type recordedEvent struct {
	Room    uuid.UUID
	Event   string
	Payload any
}

// recordingBroadcaster captures pushed events instead of delivering
// them, so tests can assert on the broadcast side of the pipeline.
type recordingBroadcaster struct {
	mu              sync.Mutex
	workspaceEvents []recordedEvent
	userEvents      []recordedEvent
}

func (b *recordingBroadcaster) BroadcastToWorkspace(
	workspaceID uuid.UUID,
	event string,
	payload any,
) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.workspaceEvents = append(b.workspaceEvents, recordedEvent{workspaceID, event, payload})
}

func (b *recordingBroadcaster) BroadcastToUser(userID uuid.UUID, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userEvents = append(b.userEvents, recordedEvent{userID, event, payload})
}

func (b *recordingBroadcaster) workspaceEventNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.workspaceEvents))
	for _, event := range b.workspaceEvents {
		names = append(names, event.Event)
	}
	return names
}

func installRecordingBroadcaster(t *testing.T) *recordingBroadcaster {
	t.Helper()

	broadcaster := &recordingBroadcaster{}
	GetTaskService().SetEventBroadcaster(broadcaster)
	t.Cleanup(func() { GetTaskService().SetEventBroadcaster(nil) })

	return broadcaster
}

func Test_CreateTask_DefaultsApplied(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{
			Title:       "Write release notes",
			WorkspaceID: workspace.ID,
		},
		201,
		&task,
	)

	assert.Equal(t, "Write release notes", task.Title)
	assert.Equal(t, TaskPriorityMedium, task.Priority)
	assert.Equal(t, TaskStatusTodo, task.Status)
	assert.Empty(t, task.Assignees)
	assert.Empty(t, task.Subtasks)
	assert.Empty(t, task.Comments)
	assert.Empty(t, task.Attachments)
	assert.Equal(t, owner.UserID, task.CreatedBy)
	assert.Equal(t, workspace.ID, task.WorkspaceID)
}

func Test_CreateTask_NonMemberForbidden(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+outsider.Token,
		CreateTaskRequestDTO{
			Title:       "Sneaky task",
			WorkspaceID: workspace.ID,
		},
		403,
	)
}

func Test_CreateTask_BroadcastsToWorkspaceRoom(t *testing.T) {
	router := createTestRouter()
	broadcaster := installRecordingBroadcaster(t)

	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{Title: "Broadcast me", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	require.Len(t, broadcaster.workspaceEvents, 1)
	event := broadcaster.workspaceEvents[0]
	assert.Equal(t, "taskCreated", event.Event)
	assert.Equal(t, workspace.ID, event.Room)

	payload, ok := event.Payload.(taskEventPayload)
	require.True(t, ok)
	assert.Equal(t, task.ID, payload.Task.ID)
	assert.Equal(t, owner.UserID, payload.UserID)
	assert.Equal(t, workspace.ID, payload.WorkspaceID)
}

func Test_GetTask_NonMemberForbidden(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{
			Title:       "Quarterly plan",
			Description: "Numbers we do not share",
			WorkspaceID: workspace.ID,
		},
		201,
		&task,
	)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+outsider.Token,
		403,
	)
	assert.NotContains(t, string(resp.Body), "Quarterly plan")
	assert.NotContains(t, string(resp.Body), "Numbers we do not share")
}

func Test_MutateTask_NonMemberForbidden(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{Title: "Keep out", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	taskURL := "/api/v1/tasks/" + task.ID.String()

	newTitle := "Hijacked"
	test_utils.MakePutRequest(
		t,
		router,
		taskURL,
		"Bearer "+outsider.Token,
		UpdateTaskRequestDTO{Title: &newTitle},
		403,
	)
	test_utils.MakeDeleteRequest(t, router, taskURL, "Bearer "+outsider.Token, 403)

	// membership is checked before content validation: a blank comment
	// from an outsider is rejected as forbidden, not as bad input
	test_utils.MakePostRequest(
		t,
		router,
		taskURL+"/comments",
		"Bearer "+outsider.Token,
		AddCommentRequestDTO{Content: "   "},
		403,
	)

	var unchanged Task
	test_utils.MakeGetRequestAndUnmarshal(t, router, taskURL, "Bearer "+owner.Token, 200, &unchanged)
	assert.Equal(t, "Keep out", unchanged.Title)
}

func Test_UpdateTask_ShallowMergeKeepsUnsetFields(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	dueDate := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	var created Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{
			Title:       "Original title",
			Description: "Original description",
			WorkspaceID: workspace.ID,
			Priority:    TaskPriorityHigh,
			DueDate:     &dueDate,
		},
		201,
		&created,
	)

	newStatus := TaskStatusInProgress
	var updated Task
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+created.ID.String(),
		"Bearer "+owner.Token,
		UpdateTaskRequestDTO{Status: &newStatus},
		200,
		&updated,
	)

	assert.Equal(t, TaskStatusInProgress, updated.Status)
	assert.Equal(t, "Original title", updated.Title)
	assert.Equal(t, "Original description", updated.Description)
	assert.Equal(t, TaskPriorityHigh, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.True(t, dueDate.Equal(*updated.DueDate))
}

func Test_UpdateTask_AnyStatusTransitionAllowed(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{Title: "Status hopper", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	// done straight from todo, then back again
	for _, status := range []TaskStatus{TaskStatusDone, TaskStatusTodo} {
		s := status
		var updated Task
		test_utils.MakePutRequestAndUnmarshal(
			t,
			router,
			"/api/v1/tasks/"+task.ID.String(),
			"Bearer "+owner.Token,
			UpdateTaskRequestDTO{Status: &s},
			200,
			&updated,
		)
		assert.Equal(t, status, updated.Status)
	}
}

func Test_DeleteTask_RemovedAndBroadcast(t *testing.T) {
	router := createTestRouter()
	broadcaster := installRecordingBroadcaster(t)

	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{Title: "Short lived", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+owner.Token,
		200,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+owner.Token,
		404,
	)

	assert.Equal(t, []string{"taskCreated", "taskDeleted"}, broadcaster.workspaceEventNames())
}

func Test_AddComment_EmptyContentRejected(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{Title: "Commentable", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String()+"/comments",
		"Bearer "+owner.Token,
		AddCommentRequestDTO{Content: "   "},
		400,
	)
}

func Test_DeleteComment_OnlyAuthorMayDelete(t *testing.T) {
	router := createTestRouter()
	admin := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(admin.Token)
	workspaces_testing.JoinTestWorkspace(*workspace.InviteCode, member.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+admin.Token,
		CreateTaskRequestDTO{Title: "Discussion", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	var comment Comment
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String()+"/comments",
		"Bearer "+member.Token,
		AddCommentRequestDTO{Content: "My two cents"},
		201,
		&comment,
	)

	commentURL := fmt.Sprintf("/api/v1/tasks/%s/comments/%s", task.ID, comment.ID)

	// even the workspace admin cannot delete someone else's comment
	test_utils.MakeDeleteRequest(t, router, commentURL, "Bearer "+admin.Token, 403)
	test_utils.MakeDeleteRequest(t, router, commentURL, "Bearer "+member.Token, 200)

	var after Task
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+member.Token,
		200,
		&after,
	)
	assert.Empty(t, after.Comments)
}

func uploadTestFiles(
	t *testing.T,
	router *gin.Engine,
	taskID uuid.UUID,
	token string,
	filenames []string,
	expectedStatusCode int,
) *test_utils.Response {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, filename := range filenames {
		part, err := writer.CreateFormFile("files", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("contents of " + filename))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/api/v1/tasks/"+taskID.String()+"/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, expectedStatusCode, w.Code, w.Body.String())

	return &test_utils.Response{Code: w.Code, Body: w.Body.Bytes()}
}

func Test_DownloadAttachment_FilenameWithQuotesIsEscaped(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{Title: "With attachment", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	trickyName := `quarterly "final" report.txt`
	resp := uploadTestFiles(t, router, task.ID, owner.Token, []string{trickyName}, 200)

	var uploaded UploadAttachmentsResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &uploaded))
	require.Len(t, uploaded.Attachments, 1)
	assert.Equal(t, trickyName, uploaded.Attachments[0].OriginalName)

	downloadURL := fmt.Sprintf(
		"/api/v1/tasks/%s/attachments/%s",
		task.ID,
		uploaded.Attachments[0].ID,
	)
	req, err := http.NewRequest("GET", downloadURL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+owner.Token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "contents of "+trickyName, w.Body.String())

	// the header must survive a roundtrip through a compliant parser
	// with the quote in the filename intact
	mediaType, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", mediaType)
	assert.Equal(t, trickyName, params["filename"])
}

func Test_UploadAttachments_LimitAndMembershipEnforced(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{Title: "Upload target", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	tooMany := make([]string, maxAttachmentsPerUpload+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("file-%d.txt", i)
	}

	// membership is checked before the file-count validation
	uploadTestFiles(t, router, task.ID, outsider.Token, tooMany, 403)
	uploadTestFiles(t, router, task.ID, owner.Token, tooMany, 400)
	uploadTestFiles(t, router, task.ID, owner.Token, []string{"ok.txt"}, 200)
}

type panickingBroadcaster struct{}

func (panickingBroadcaster) BroadcastToWorkspace(uuid.UUID, string, any) {
	panic("broadcast channel is down")
}

func (panickingBroadcaster) BroadcastToUser(uuid.UUID, string, any) {
	panic("broadcast channel is down")
}

type failingActivityRecorder struct{}

func (failingActivityRecorder) RecordActivity(
	userID uuid.UUID,
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	action activity_logs.ActivityAction,
	details string,
) error {
	return errors.New("activity store unavailable")
}

func Test_TaskMutations_SideEffectFailuresDoNotRollBack(t *testing.T) {
	router := createTestRouter()
	service := GetTaskService()

	previousRecorder := service.activityLogService
	service.SetEventBroadcaster(panickingBroadcaster{})
	service.activityLogService = failingActivityRecorder{}
	t.Cleanup(func() {
		service.SetEventBroadcaster(nil)
		service.activityLogService = previousRecorder
	})

	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	var task Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		CreateTaskRequestDTO{Title: "Survives bad plumbing", WorkspaceID: workspace.ID},
		201,
		&task,
	)

	newStatus := TaskStatusDone
	var updated Task
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+owner.Token,
		UpdateTaskRequestDTO{Status: &newStatus},
		200,
		&updated,
	)
	assert.Equal(t, TaskStatusDone, updated.Status)

	// both mutations landed in the store despite the activity log and
	// the broadcaster failing on every call
	var fetched Task
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+owner.Token,
		200,
		&fetched,
	)
	assert.Equal(t, "Survives bad plumbing", fetched.Title)
	assert.Equal(t, TaskStatusDone, fetched.Status)
}

func Test_GetWorkspaceTasks_NewestFirst(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	for _, title := range []string{"first", "second"} {
		test_utils.MakePostRequest(
			t,
			router,
			"/api/v1/tasks",
			"Bearer "+owner.Token,
			CreateTaskRequestDTO{Title: title, WorkspaceID: workspace.ID},
			201,
		)
		time.Sleep(10 * time.Millisecond)
	}

	var list ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/workspace/"+workspace.ID.String(),
		"Bearer "+owner.Token,
		200,
		&list,
	)

	require.Len(t, list.Tasks, 2)
	assert.Equal(t, "second", list.Tasks[0].Title)
	assert.Equal(t, "first", list.Tasks[1].Title)
}

func Test_GetWorkspaceTasks_NonMemberForbidden(t *testing.T) {
	router := createTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace(owner.Token)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/tasks/workspace/"+workspace.ID.String(),
		"Bearer "+outsider.Token,
		403,
	)
}
