package tasks

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title       string       `json:"title"       binding:"required,min=1,max=200"`
	Description string       `json:"description" binding:"max=2000"`
	WorkspaceID uuid.UUID    `json:"workspaceId" binding:"required"`
	Assignees   []uuid.UUID  `json:"assignees"`
	DueDate     *time.Time   `json:"dueDate"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Subtasks    []Subtask    `json:"subtasks"`
	Tags        []Tag        `json:"tags"`
}

// UpdateTaskRequestDTO carries a shallow patch: nil fields keep their
// stored values, set fields replace them wholesale.
type UpdateTaskRequestDTO struct {
	Title       *string       `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string       `json:"description" binding:"omitempty,max=2000"`
	Assignees   *[]uuid.UUID  `json:"assignees"`
	DueDate     *time.Time    `json:"dueDate"`
	Priority    *TaskPriority `json:"priority"`
	Status      *TaskStatus   `json:"status"`
	Subtasks    *[]Subtask    `json:"subtasks"`
	Tags        *[]Tag        `json:"tags"`
}

type AddCommentRequestDTO struct {
	Content string `json:"content"`
}

type ListTasksResponseDTO struct {
	Tasks []Task `json:"tasks"`
}

type UploadAttachmentsResponseDTO struct {
	Attachments []Attachment `json:"attachments"`
}
