package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mawuli/afrivoice/internal/api/middleware"
	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/importer"
	"github.com/mawuli/afrivoice/internal/logger"
	"github.com/mawuli/afrivoice/internal/repository"
)

// ImportHandler handles bulk task import endpoints.
type ImportHandler struct {
	importer *importer.Importer
	jobs     *repository.ImportJobRepository
	maxBytes int64
}

// NewImportHandler creates a new import handler. maxFileSizeMB bounds the
// uploaded file size.
func NewImportHandler(imp *importer.Importer, jobs *repository.ImportJobRepository, maxFileSizeMB int) *ImportHandler {
	return &ImportHandler{
		importer: imp,
		jobs:     jobs,
		maxBytes: int64(maxFileSizeMB) << 20,
	}
}

// importForm is the multipart form accompanying the uploaded file.
type importForm struct {
	TaskType       string `form:"task_type" binding:"required"`
	BatchName      string `form:"batch_name" binding:"required"`
	TargetLanguage string `form:"target_language" binding:"required"`
	SourceLanguage string `form:"source_language"`
	Priority       string `form:"priority"`
}

// Create handles POST /api/v1/imports: one uploaded file becomes many
// pending tasks. Runs synchronously; the batched writer serializes all
// remote calls, so one request equals one complete import.
func (h *ImportHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var form importForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	batch := domain.TaskBatch{
		BatchName:      form.BatchName,
		TaskType:       domain.TaskType(form.TaskType),
		TargetLanguage: form.TargetLanguage,
		SourceLanguage: form.SourceLanguage,
		Priority:       domain.TaskPriority(form.Priority),
		CreatedBy:      user.ID,
	}
	upload := importer.Upload{
		FileName:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get("Content-Type"),
		Data:      data,
	}

	ctx := logger.WithFields(c.Request.Context(), logger.Fields{
		logger.FieldBatch:    batch.BatchName,
		logger.FieldTaskType: form.TaskType,
	})

	summary, err := h.importer.Run(ctx, batch, upload, nil)
	if err != nil {
		status := importErrorStatus(err)
		body := gin.H{"error": err.Error()}
		if summary != nil {
			body["summary"] = summary
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// Get handles GET /api/v1/imports/:id.
func (h *ImportHandler) Get(c *gin.Context) {
	job, err := h.jobs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "import job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// List handles GET /api/v1/imports.
func (h *ImportHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	jobs, err := h.jobs.ListRecent(c.Request.Context(), user.ID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list import jobs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// importErrorStatus maps the importer's error taxonomy to HTTP statuses.
// Input-rejection errors are client errors; chunk failures are partial
// commits reported as 502 with the summary attached.
func importErrorStatus(err error) int {
	var missing *importer.MissingHeadersError
	var chunk *importer.ChunkError
	switch {
	case errors.Is(err, importer.ErrNoIdentity):
		return http.StatusUnauthorized
	case errors.As(err, &missing),
		errors.Is(err, importer.ErrUnparseableFile),
		errors.Is(err, importer.ErrNoValidTasks),
		errors.Is(err, importer.ErrNoImageEntries),
		errors.Is(err, importer.ErrSameLanguage),
		errors.Is(err, importer.ErrInvalidTaskType):
		return http.StatusBadRequest
	case errors.As(err, &chunk):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
