package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mawuli/afrivoice/internal/api/middleware"
	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/repository"
)

// ContributionHandler handles contribution submission and listing.
type ContributionHandler struct {
	contributions *repository.ContributionRepository
	tasks         *repository.TaskRepository
}

// NewContributionHandler creates a new contribution handler.
func NewContributionHandler(contributions *repository.ContributionRepository, tasks *repository.TaskRepository) *ContributionHandler {
	return &ContributionHandler{contributions: contributions, tasks: tasks}
}

type contributionRequest struct {
	StoragePath string `json:"storage_path"`
	Text        string `json:"text"`
}

// Create handles POST /api/v1/tasks/:id/contributions.
func (h *ContributionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), uint(taskID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var req contributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StoragePath == "" && req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a recording path or text payload is required"})
		return
	}

	contribution := &domain.Contribution{
		TaskID:      task.ID,
		UserID:      user.ID,
		Type:        task.Type,
		StoragePath: req.StoragePath,
		Text:        req.Text,
		Status:      domain.ContributionPending,
	}
	if err := h.contributions.Create(c.Request.Context(), contribution); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save contribution"})
		return
	}

	if err := h.tasks.UpdateStatus(c.Request.Context(), task.ID, domain.TaskStatusCompleted); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task status"})
		return
	}

	c.JSON(http.StatusCreated, contribution)
}

// ListByTask handles GET /api/v1/tasks/:id/contributions.
func (h *ContributionHandler) ListByTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	contributions, err := h.contributions.ListByTask(c.Request.Context(), uint(taskID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contributions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contributions": contributions})
}
