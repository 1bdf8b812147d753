package tasks

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Subtask struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Attachment struct {
	// ID doubles as the storage key of the file bytes
	ID           uuid.UUID `json:"id"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Task sublists are stored as JSONB columns: they are always read and
// written together with the task, never queried independently.
type (
	UUIDList    []uuid.UUID
	Subtasks    []Subtask
	Comments    []Comment
	Attachments []Attachment
	Tags        []Tag
)

func (l UUIDList) Value() (driver.Value, error)    { return jsonbValue(l) }
func (l *UUIDList) Scan(value any) error           { return jsonbScan(l, value) }
func (s Subtasks) Value() (driver.Value, error)    { return jsonbValue(s) }
func (s *Subtasks) Scan(value any) error           { return jsonbScan(s, value) }
func (c Comments) Value() (driver.Value, error)    { return jsonbValue(c) }
func (c *Comments) Scan(value any) error           { return jsonbScan(c, value) }
func (a Attachments) Value() (driver.Value, error) { return jsonbValue(a) }
func (a *Attachments) Scan(value any) error        { return jsonbScan(a, value) }
func (t Tags) Value() (driver.Value, error)        { return jsonbValue(t) }
func (t *Tags) Scan(value any) error               { return jsonbScan(t, value) }

func jsonbValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb column: %w", err)
	}
	return string(data), nil
}

func jsonbScan(dest any, value any) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	return json.Unmarshal(data, dest)
}

type Task struct {
	ID          uuid.UUID    `json:"id"          gorm:"primaryKey;type:uuid;column:id"`
	Title       string       `json:"title"       gorm:"column:title;not null"`
	Description string       `json:"description" gorm:"column:description"`
	Assignees   UUIDList     `json:"assignees"   gorm:"type:jsonb;column:assignees"`
	DueDate     *time.Time   `json:"dueDate"     gorm:"column:due_date"`
	Priority    TaskPriority `json:"priority"    gorm:"column:priority;not null"`
	Status      TaskStatus   `json:"status"      gorm:"column:status;not null"`
	Subtasks    Subtasks     `json:"subtasks"    gorm:"type:jsonb;column:subtasks"`
	Attachments Attachments  `json:"attachments" gorm:"type:jsonb;column:attachments"`
	Comments    Comments     `json:"comments"    gorm:"type:jsonb;column:comments"`
	Tags        Tags         `json:"tags"        gorm:"type:jsonb;column:tags"`
	CreatedBy   uuid.UUID    `json:"createdBy"   gorm:"type:uuid;column:created_by;not null"`
	WorkspaceID uuid.UUID    `json:"workspaceId" gorm:"type:uuid;column:workspace_id;not null"`
	CreatedAt   time.Time    `json:"createdAt"   gorm:"column:created_at;not null"`
}

func (t *Task) TableName() string {
	return "tasks"
}
