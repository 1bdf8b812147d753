package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"taskhive-backend/internal/config"
	"taskhive-backend/internal/features/activity_logs"
	"taskhive-backend/internal/features/files"
	"taskhive-backend/internal/features/notifications"
	"taskhive-backend/internal/features/realtime"
	users_models "taskhive-backend/internal/features/users/models"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"
	"taskhive-backend/internal/util/logger"

	"github.com/google/uuid"
)

const maxAttachmentsPerUpload = 10

// activityRecorder is the slice of the activity log service the task
// pipeline writes through.
type activityRecorder interface {
	RecordActivity(
		userID uuid.UUID,
		workspaceID uuid.UUID,
		taskID uuid.UUID,
		action activity_logs.ActivityAction,
		details string,
	) error
}

// TaskService runs every task mutation through the same pipeline:
// authorize against the workspace, apply the change, record activity,
// then broadcast. Activity and broadcast failures are logged and
// swallowed, the mutation itself never rolls back because of them.
type TaskService struct {
	taskRepository      *TaskRepository
	workspaceService    *workspaces_services.WorkspaceService
	activityLogService  activityRecorder
	notificationService *notifications.NotificationService
	fileStorage         files.FileStorage
	eventBroadcaster    realtime.EventBroadcaster
}

func (s *TaskService) SetEventBroadcaster(broadcaster realtime.EventBroadcaster) {
	s.eventBroadcaster = broadcaster
}

type taskEventPayload struct {
	Task        *Task     `json:"task"`
	UserID      uuid.UUID `json:"userId"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

type taskDeletedPayload struct {
	TaskID      uuid.UUID `json:"taskId"`
	UserID      uuid.UUID `json:"userId"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

type commentAddedPayload struct {
	TaskID      uuid.UUID `json:"taskId"`
	Comment     *Comment  `json:"comment"`
	UserID      uuid.UUID `json:"userId"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

type commentDeletedPayload struct {
	TaskID      uuid.UUID `json:"taskId"`
	CommentID   uuid.UUID `json:"commentId"`
	UserID      uuid.UUID `json:"userId"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

func (s *TaskService) GetWorkspaceTasks(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*ListTasksResponseDTO, error) {
	if err := s.authorizeWorkspaceAccess(workspaceID, user); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepository.GetTasksByWorkspaceID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}

	return &ListTasksResponseDTO{Tasks: tasks}, nil
}

func (s *TaskService) CreateTask(
	request *CreateTaskRequestDTO,
	user *users_models.User,
) (*Task, error) {
	if err := s.authorizeWorkspaceAccess(request.WorkspaceID, user); err != nil {
		return nil, err
	}

	priority := request.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.New("invalid priority")
	}

	status := request.Status
	if status == "" {
		status = TaskStatusTodo
	}
	if !status.IsValid() {
		return nil, errors.New("invalid status")
	}

	subtasks := make(Subtasks, 0, len(request.Subtasks))
	for _, subtask := range request.Subtasks {
		if subtask.ID == uuid.Nil {
			subtask.ID = uuid.New()
		}
		subtasks = append(subtasks, subtask)
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		Assignees:   UUIDList(request.Assignees),
		DueDate:     request.DueDate,
		Priority:    priority,
		Status:      status,
		Subtasks:    subtasks,
		Attachments: Attachments{},
		Comments:    Comments{},
		Tags:        Tags(request.Tags),
		CreatedBy:   user.ID,
		WorkspaceID: request.WorkspaceID,
		CreatedAt:   time.Now().UTC(),
	}
	if task.Assignees == nil {
		task.Assignees = UUIDList{}
	}
	if task.Tags == nil {
		task.Tags = Tags{}
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.recordActivity(
		user.ID,
		task,
		activity_logs.ActivityActionCreated,
		fmt.Sprintf("Task %q was created", task.Title),
	)

	err := s.notificationService.CreateAssignmentNotifications(
		task.Assignees,
		task.WorkspaceID,
		task.ID,
		task.Title,
	)
	if err != nil {
		logger.GetLogger().
			Error("Failed to create assignment notifications", "taskId", task.ID, "error", err)
	}

	s.broadcastToWorkspace(task.WorkspaceID, realtime.EventTaskCreated, taskEventPayload{
		Task:        task,
		UserID:      user.ID,
		WorkspaceID: task.WorkspaceID,
	})

	return task, nil
}

func (s *TaskService) GetTask(taskID uuid.UUID, user *users_models.User) (*Task, error) {
	return s.getAuthorizedTask(taskID, user)
}

func (s *TaskService) UpdateTask(
	taskID uuid.UUID,
	request *UpdateTaskRequestDTO,
	user *users_models.User,
) (*Task, error) {
	task, err := s.getAuthorizedTask(taskID, user)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		task.Title = *request.Title
	}
	if request.Description != nil {
		task.Description = *request.Description
	}
	if request.Assignees != nil {
		task.Assignees = UUIDList(*request.Assignees)
	}
	if request.DueDate != nil {
		task.DueDate = request.DueDate
	}
	if request.Priority != nil {
		if !request.Priority.IsValid() {
			return nil, errors.New("invalid priority")
		}
		task.Priority = *request.Priority
	}
	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, errors.New("invalid status")
		}
		task.Status = *request.Status
	}
	if request.Subtasks != nil {
		subtasks := make(Subtasks, 0, len(*request.Subtasks))
		for _, subtask := range *request.Subtasks {
			if subtask.ID == uuid.Nil {
				subtask.ID = uuid.New()
			}
			subtasks = append(subtasks, subtask)
		}
		task.Subtasks = subtasks
	}
	if request.Tags != nil {
		task.Tags = Tags(*request.Tags)
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.recordActivity(
		user.ID,
		task,
		activity_logs.ActivityActionUpdated,
		fmt.Sprintf("Task %q was updated", task.Title),
	)

	s.broadcastToWorkspace(task.WorkspaceID, realtime.EventTaskUpdated, taskEventPayload{
		Task:        task,
		UserID:      user.ID,
		WorkspaceID: task.WorkspaceID,
	})

	return task, nil
}

func (s *TaskService) DeleteTask(taskID uuid.UUID, user *users_models.User) error {
	task, err := s.getAuthorizedTask(taskID, user)
	if err != nil {
		return err
	}

	// recorded before removal so the entry always lands, the log
	// outlives the task
	s.recordActivity(
		user.ID,
		task,
		activity_logs.ActivityActionDeleted,
		fmt.Sprintf("Task %q was deleted", task.Title),
	)

	if err := s.taskRepository.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.removeAttachmentFiles(task.Attachments)

	s.broadcastToWorkspace(task.WorkspaceID, realtime.EventTaskDeleted, taskDeletedPayload{
		TaskID:      task.ID,
		UserID:      user.ID,
		WorkspaceID: task.WorkspaceID,
	})

	return nil
}

func (s *TaskService) AddComment(
	taskID uuid.UUID,
	request *AddCommentRequestDTO,
	user *users_models.User,
) (*Comment, error) {
	task, err := s.getAuthorizedTask(taskID, user)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(request.Content)
	if content == "" {
		return nil, errors.New("comment content is required")
	}

	comment := Comment{
		ID:        uuid.New(),
		Content:   content,
		AuthorID:  user.ID,
		CreatedAt: time.Now().UTC(),
	}
	task.Comments = append(task.Comments, comment)

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.recordActivity(
		user.ID,
		task,
		activity_logs.ActivityActionCommented,
		fmt.Sprintf("Comment added on task %q", task.Title),
	)

	s.broadcastToWorkspace(task.WorkspaceID, realtime.EventCommentAdded, commentAddedPayload{
		TaskID:      task.ID,
		Comment:     &comment,
		UserID:      user.ID,
		WorkspaceID: task.WorkspaceID,
	})

	return &comment, nil
}

func (s *TaskService) DeleteComment(
	taskID uuid.UUID,
	commentID uuid.UUID,
	user *users_models.User,
) error {
	task, err := s.getAuthorizedTask(taskID, user)
	if err != nil {
		return err
	}

	commentIndex := -1
	for i, comment := range task.Comments {
		if comment.ID == commentID {
			commentIndex = i
			break
		}
	}
	if commentIndex == -1 {
		return errors.New("comment not found")
	}

	// authorship is the only thing that grants deletion, admins included
	if task.Comments[commentIndex].AuthorID != user.ID {
		return errors.New("you can only delete your own comments")
	}

	task.Comments = append(task.Comments[:commentIndex], task.Comments[commentIndex+1:]...)

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.recordActivity(
		user.ID,
		task,
		activity_logs.ActivityActionCommentDeleted,
		fmt.Sprintf("Comment deleted on task %q", task.Title),
	)

	s.broadcastToWorkspace(task.WorkspaceID, realtime.EventCommentDeleted, commentDeletedPayload{
		TaskID:      task.ID,
		CommentID:   commentID,
		UserID:      user.ID,
		WorkspaceID: task.WorkspaceID,
	})

	return nil
}

func (s *TaskService) UploadAttachments(
	ctx context.Context,
	taskID uuid.UUID,
	fileHeaders []*multipart.FileHeader,
	user *users_models.User,
) ([]Attachment, error) {
	task, err := s.getAuthorizedTask(taskID, user)
	if err != nil {
		return nil, err
	}

	if len(fileHeaders) == 0 {
		return nil, errors.New("no files uploaded")
	}
	if len(fileHeaders) > maxAttachmentsPerUpload {
		return nil, errors.New("cannot upload more than 10 files at once")
	}

	newAttachments := make([]Attachment, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		attachment := Attachment{
			ID:           uuid.New(),
			OriginalName: fileHeader.Filename,
			ContentType:  fileHeader.Header.Get("Content-Type"),
			Size:         fileHeader.Size,
			UploadedAt:   time.Now().UTC(),
		}

		file, err := fileHeader.Open()
		if err != nil {
			s.removeAttachmentFiles(Attachments(newAttachments))
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		err = s.fileStorage.SaveFile(ctx, attachment.ID, file, attachment.Size, attachment.ContentType)
		_ = file.Close()
		if err != nil {
			s.removeAttachmentFiles(Attachments(newAttachments))
			return nil, fmt.Errorf("failed to store uploaded file: %w", err)
		}

		newAttachments = append(newAttachments, attachment)
	}

	task.Attachments = append(task.Attachments, newAttachments...)

	if err := s.taskRepository.UpdateTask(task); err != nil {
		// the task record was not updated, so the stored bytes would be
		// unreachable
		s.removeAttachmentFiles(Attachments(newAttachments))
		return nil, fmt.Errorf("failed to save task attachments: %w", err)
	}

	return newAttachments, nil
}

func (s *TaskService) DownloadAttachment(
	ctx context.Context,
	taskID uuid.UUID,
	attachmentID uuid.UUID,
	user *users_models.User,
) (io.ReadCloser, *Attachment, error) {
	task, err := s.getAuthorizedTask(taskID, user)
	if err != nil {
		return nil, nil, err
	}

	attachment := findAttachment(task.Attachments, attachmentID)
	if attachment == nil {
		return nil, nil, errors.New("attachment not found")
	}

	reader, err := s.fileStorage.GetFile(ctx, attachment.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open attachment: %w", err)
	}

	return reader, attachment, nil
}

func (s *TaskService) DeleteAttachment(
	ctx context.Context,
	taskID uuid.UUID,
	attachmentID uuid.UUID,
	user *users_models.User,
) error {
	task, err := s.getAuthorizedTask(taskID, user)
	if err != nil {
		return err
	}

	attachmentIndex := -1
	for i, attachment := range task.Attachments {
		if attachment.ID == attachmentID {
			attachmentIndex = i
			break
		}
	}
	if attachmentIndex == -1 {
		return errors.New("attachment not found")
	}

	if err := s.fileStorage.DeleteFile(ctx, attachmentID); err != nil {
		logger.GetLogger().
			Error("Failed to delete attachment file", "attachmentId", attachmentID, "error", err)
	}

	task.Attachments = append(
		task.Attachments[:attachmentIndex],
		task.Attachments[attachmentIndex+1:]...,
	)

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to remove attachment: %w", err)
	}

	return nil
}

// OnBeforeWorkspaceDeletion removes the workspace's tasks and their
// stored files when cascade deletion is enabled. With the default
// configuration tasks are retained.
func (s *TaskService) OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error {
	if !config.GetEnv().CascadeWorkspaceDelete {
		return nil
	}

	tasks, err := s.taskRepository.GetTasksByWorkspaceID(workspaceID)
	if err != nil {
		return fmt.Errorf("failed to load workspace tasks for deletion: %w", err)
	}

	for _, task := range tasks {
		s.removeAttachmentFiles(task.Attachments)
	}

	if err := s.taskRepository.DeleteTasksByWorkspaceID(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace tasks: %w", err)
	}

	return nil
}

func (s *TaskService) authorizeWorkspaceAccess(
	workspaceID uuid.UUID,
	user *users_models.User,
) error {
	workspace, err := s.workspaceService.GetWorkspaceByID(workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return errors.New("workspace not found")
	}

	isMember, err := s.workspaceService.IsWorkspaceMember(workspaceID, user.ID)
	if err != nil {
		return err
	}
	if !isMember {
		return errors.New("access denied")
	}

	return nil
}

func (s *TaskService) getAuthorizedTask(
	taskID uuid.UUID,
	user *users_models.User,
) (*Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, errors.New("task not found")
	}

	isMember, err := s.workspaceService.IsWorkspaceMember(task.WorkspaceID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, errors.New("access denied")
	}

	return task, nil
}

func (s *TaskService) recordActivity(
	userID uuid.UUID,
	task *Task,
	action activity_logs.ActivityAction,
	details string,
) {
	err := s.activityLogService.RecordActivity(userID, task.WorkspaceID, task.ID, action, details)
	if err != nil {
		logger.GetLogger().
			Error("Failed to record task activity", "taskId", task.ID, "action", action, "error", err)
	}
}

func (s *TaskService) broadcastToWorkspace(workspaceID uuid.UUID, event string, payload any) {
	if s.eventBroadcaster == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().
				Error("Recovered from panic while broadcasting event", "event", event, "panic", r)
		}
	}()

	s.eventBroadcaster.BroadcastToWorkspace(workspaceID, event, payload)
}

func (s *TaskService) removeAttachmentFiles(attachments Attachments) {
	for _, attachment := range attachments {
		if err := s.fileStorage.DeleteFile(context.Background(), attachment.ID); err != nil {
			logger.GetLogger().
				Error("Failed to delete attachment file", "attachmentId", attachment.ID, "error", err)
		}
	}
}

func findAttachment(attachments Attachments, attachmentID uuid.UUID) *Attachment {
	for i := range attachments {
		if attachments[i].ID == attachmentID {
			return &attachments[i]
		}
	}
	return nil
}
