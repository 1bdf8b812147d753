package activity_logs

import (
	"errors"
	"fmt"
	"time"

	users_models "taskhive-backend/internal/features/users/models"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
)

type ActivityLogService struct {
	activityLogRepository *ActivityLogRepository
	workspaceService      *workspaces_services.WorkspaceService
}

// RecordActivity appends an entry to the activity log. Callers treat
// failures as non-fatal: a mutation never rolls back because its
// audit record could not be written.
func (s *ActivityLogService) RecordActivity(
	userID uuid.UUID,
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	action ActivityAction,
	details string,
) error {
	entry := &ActivityLogEntry{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		TaskID:      taskID,
		Action:      action,
		Details:     details,
		CreatedAt:   time.Now().UTC(),
	}

	return s.activityLogRepository.InsertEntry(entry)
}

// GetTaskActivity returns the newest entries for a task. Membership is
// checked against the workspace recorded on the entries themselves, so
// history stays readable after the task is deleted.
func (s *ActivityLogService) GetTaskActivity(
	taskID uuid.UUID,
	user *users_models.User,
) ([]ActivityLogEntry, error) {
	entries, err := s.activityLogRepository.GetByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task activity: %w", err)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	isMember, err := s.workspaceService.IsWorkspaceMember(entries[0].WorkspaceID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, errors.New("access denied")
	}

	return entries, nil
}
