package tasks

import (
	"io"
	"mime"
	"net/http"

	users_middleware "taskhive-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *TaskService
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tasks/workspace/:workspaceId", c.GetWorkspaceTasks)
	router.POST("/tasks", c.CreateTask)
	router.GET("/tasks/:taskId", c.GetTask)
	router.PUT("/tasks/:taskId", c.UpdateTask)
	router.DELETE("/tasks/:taskId", c.DeleteTask)
	router.POST("/tasks/:taskId/comments", c.AddComment)
	router.DELETE("/tasks/:taskId/comments/:commentId", c.DeleteComment)
	router.POST("/tasks/:taskId/upload", c.UploadAttachments)
	router.GET("/tasks/:taskId/attachments/:attachmentId", c.DownloadAttachment)
	router.DELETE("/tasks/:taskId/attachments/:attachmentId", c.DeleteAttachment)
}

func mapTaskError(ctx *gin.Context, err error, fallback string) {
	switch err.Error() {
	case "task not found", "workspace not found", "comment not found", "attachment not found":
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case "access denied", "you can only delete your own comments":
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case "comment content is required",
		"no files uploaded",
		"cannot upload more than 10 files at once",
		"invalid priority",
		"invalid status":
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// GetWorkspaceTasks
// @Summary List tasks of a workspace
// @Description Workspace members only; newest first
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} ListTasksResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/workspace/{workspaceId} [get]
func (c *TaskController) GetWorkspaceTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("workspaceId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	response, err := c.taskService.GetWorkspaceTasks(workspaceID, user)
	if err != nil {
		mapTaskError(ctx, err, "Failed to get tasks")
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateTask
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequestDTO true "Task data"
// @Success 201 {object} Task
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.CreateTask(&request, user)
	if err != nil {
		mapTaskError(ctx, err, "Failed to create task")
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

// GetTask
// @Summary Get a single task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} Task
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{taskId} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := c.taskService.GetTask(taskID, user)
	if err != nil {
		mapTaskError(ctx, err, "Failed to get task")
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// UpdateTask
// @Summary Update a task
// @Description Shallow merge: omitted fields keep their stored values
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body UpdateTaskRequestDTO true "Fields to update"
// @Success 200 {object} Task
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{taskId} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.UpdateTask(taskID, &request, user)
	if err != nil {
		mapTaskError(ctx, err, "Failed to update task")
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// DeleteTask
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{taskId} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := c.taskService.DeleteTask(taskID, user); err != nil {
		mapTaskError(ctx, err, "Failed to delete task")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// AddComment
// @Summary Add a comment to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body AddCommentRequestDTO true "Comment content"
// @Success 201 {object} Comment
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tasks/{taskId}/comments [post]
func (c *TaskController) AddComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request AddCommentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	comment, err := c.taskService.AddComment(taskID, &request, user)
	if err != nil {
		mapTaskError(ctx, err, "Failed to add comment")
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// DeleteComment
// @Summary Delete a comment
// @Description Only the comment author may delete it
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{taskId}/comments/{commentId} [delete]
func (c *TaskController) DeleteComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	commentID, err := uuid.Parse(ctx.Param("commentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := c.taskService.DeleteComment(taskID, commentID, user); err != nil {
		mapTaskError(ctx, err, "Failed to delete comment")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// UploadAttachments
// @Summary Attach files to a task
// @Description Accepts 1 to 10 files in the multipart "files" field
// @Tags tasks
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param files formData file true "Files to attach"
// @Success 200 {object} UploadAttachmentsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tasks/{taskId}/upload [post]
func (c *TaskController) UploadAttachments(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	attachments, err := c.taskService.UploadAttachments(
		ctx.Request.Context(),
		taskID,
		form.File["files"],
		user,
	)
	if err != nil {
		mapTaskError(ctx, err, "Failed to upload files")
		return
	}

	ctx.JSON(http.StatusOK, UploadAttachmentsResponseDTO{Attachments: attachments})
}

// DownloadAttachment
// @Summary Download an attachment
// @Tags tasks
// @Produce octet-stream
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{taskId}/attachments/{attachmentId} [get]
func (c *TaskController) DownloadAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	reader, attachment, err := c.taskService.DownloadAttachment(
		ctx.Request.Context(),
		taskID,
		attachmentID,
		user,
	)
	if err != nil {
		mapTaskError(ctx, err, "Failed to download attachment")
		return
	}
	defer reader.Close()

	// FormatMediaType escapes quotes and control characters the original
	// filename may carry
	ctx.Header("Content-Disposition", mime.FormatMediaType(
		"attachment",
		map[string]string{"filename": attachment.OriginalName},
	))
	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Header("Content-Type", contentType)

	if _, err := io.Copy(ctx.Writer, reader); err != nil {
		// headers are already sent, nothing sensible left to do
		return
	}
}

// DeleteAttachment
// @Summary Remove an attachment from a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{taskId}/attachments/{attachmentId} [delete]
func (c *TaskController) DeleteAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	err = c.taskService.DeleteAttachment(ctx.Request.Context(), taskID, attachmentID, user)
	if err != nil {
		mapTaskError(ctx, err, "Failed to delete attachment")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}
