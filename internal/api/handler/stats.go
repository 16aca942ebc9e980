package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mawuli/afrivoice/internal/repository"
)

// StatsHandler serves dashboard counters.
type StatsHandler struct {
	tasks         *repository.TaskRepository
	contributions *repository.ContributionRepository
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(tasks *repository.TaskRepository, contributions *repository.ContributionRepository) *StatsHandler {
	return &StatsHandler{tasks: tasks, contributions: contributions}
}

// Get handles GET /api/v1/stats: task counts by status and type, plus
// contribution counts by review status.
func (h *StatsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	byStatus, err := h.tasks.CountByStatus(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate task statuses"})
		return
	}
	byType, err := h.tasks.CountByType(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate task types"})
		return
	}
	contributionCounts, err := h.contributions.CountByStatus(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate contributions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks_by_status": byStatus,
		"tasks_by_type":   byType,
		"contributions":   contributionCounts,
	})
}
