package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"taskflow/internal/middleware"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// maxAttachmentSize caps uploads at 10 MB.
const maxAttachmentSize = 10 << 20

// AttachmentResponse mirrors a stored attachment's metadata.
type AttachmentResponse struct {
	ID       string `json:"id"`
	TaskID   string `json:"task_id"`
	Filename string `json:"filename"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type,omitempty"`
}

func attachmentResponse(a *model.TaskAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:       a.ID.String(),
		TaskID:   a.TaskID.String(),
		Filename: a.Filename,
		FileSize: a.FileSize,
		MimeType: a.MimeType,
	}
}

// AttachmentHandler stores uploaded files on disk and their metadata
// in the database. Every operation verifies the parent task belongs
// to the caller.
type AttachmentHandler struct {
	attachmentRepo *repository.AttachmentRepository
	taskRepo       *repository.TaskRepository
	uploadDir      string
}

func NewAttachmentHandler(
	attachmentRepo *repository.AttachmentRepository,
	taskRepo *repository.TaskRepository,
	uploadDir string,
) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		uploadDir:      uploadDir,
	}
}

// Upload attaches a file to a task.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if _, err := h.taskRepo.GetByID(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}
	if file.Size > maxAttachmentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10 MB limit"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	// The stored name is prefixed with a fresh UUID so uploads with the
	// same filename never collide.
	stored := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
	dest := filepath.Join(h.uploadDir, stored)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	attachment := &model.TaskAttachment{
		TaskID:   taskID,
		Filename: filepath.Base(file.Filename),
		FilePath: dest,
		FileSize: file.Size,
		MimeType: file.Header.Get("Content-Type"),
	}
	if err := h.attachmentRepo.Create(c.Request.Context(), attachment); err != nil {
		if rmErr := os.Remove(dest); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", dest).Msg("failed to remove orphaned upload")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attachment"})
		return
	}

	c.JSON(http.StatusCreated, attachmentResponse(attachment))
}

// List returns the metadata of every attachment on a task.
func (h *AttachmentHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if _, err := h.taskRepo.GetByID(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	attachments, err := h.attachmentRepo.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachments"})
		return
	}

	resp := make([]AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		resp = append(resp, attachmentResponse(&attachments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Download streams an attachment back with its original filename.
func (h *AttachmentHandler) Download(c *gin.Context) {
	attachment, ok := h.authorizedAttachment(c)
	if !ok {
		return
	}

	c.FileAttachment(attachment.FilePath, attachment.Filename)
}

// Delete removes an attachment's metadata and its file on disk.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	attachment, ok := h.authorizedAttachment(c)
	if !ok {
		return
	}

	if err := h.attachmentRepo.Delete(c.Request.Context(), attachment.ID); err != nil {
		respondError(c, err)
		return
	}
	if err := os.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", attachment.FilePath).Msg("failed to remove attachment file")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}

// authorizedAttachment loads the attachment from the :attachmentID
// param and verifies the parent task belongs to the caller. It writes
// the error response itself on failure.
func (h *AttachmentHandler) authorizedAttachment(c *gin.Context) (*model.TaskAttachment, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	attachmentID, err := uuid.Parse(c.Param("attachmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID format"})
		return nil, false
	}

	attachment, err := h.attachmentRepo.GetByID(c.Request.Context(), attachmentID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	if _, err := h.taskRepo.GetByID(c.Request.Context(), userID, attachment.TaskID); err != nil {
		// Hide attachments on other users' tasks behind a 404.
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return nil, false
	}

	return attachment, true
}
