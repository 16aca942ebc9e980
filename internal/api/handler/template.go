package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/importer"
)

// TemplateHandler serves downloadable CSV templates per task type.
type TemplateHandler struct{}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// Get handles GET /api/v1/templates/:type.
func (h *TemplateHandler) Get(c *gin.Context) {
	taskType := domain.TaskType(c.Param("type"))

	data, err := importer.Template(taskType)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("%s-template.csv", taskType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
