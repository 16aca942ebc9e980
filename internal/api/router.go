package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mawuli/afrivoice/internal/api/handler"
	"github.com/mawuli/afrivoice/internal/api/middleware"
	"github.com/mawuli/afrivoice/internal/config"
	"github.com/mawuli/afrivoice/internal/identity"
	"github.com/mawuli/afrivoice/internal/importer"
	"github.com/mawuli/afrivoice/internal/repository"
)

// Deps collects everything the router needs.
type Deps struct {
	Importer      *importer.Importer
	Tasks         *repository.TaskRepository
	ImportJobs    *repository.ImportJobRepository
	Contributions *repository.ContributionRepository
	Identity      *identity.Client
	Config        *config.Config
}

// SetupRouter configures the Gin router with all routes.
func SetupRouter(deps Deps) *gin.Engine {
	switch deps.Config.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  deps.Config.Server.CORS.AllowedOrigins,
		AllowAllOrigins: deps.Config.Server.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler()
	importHandler := handler.NewImportHandler(deps.Importer, deps.ImportJobs, deps.Config.Import.MaxFileSizeMB)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	templateHandler := handler.NewTemplateHandler()
	statsHandler := handler.NewStatsHandler(deps.Tasks, deps.Contributions)
	contributionHandler := handler.NewContributionHandler(deps.Contributions, deps.Tasks)

	auth := middleware.RequireUser(deps.Identity)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/imports", auth, importHandler.Create)
		v1.GET("/imports", auth, importHandler.List)
		v1.GET("/imports/:id", auth, importHandler.Get)

		v1.GET("/tasks", taskHandler.List)
		v1.GET("/tasks/:id", taskHandler.Get)

		v1.POST("/tasks/:id/contributions", auth, contributionHandler.Create)
		v1.GET("/tasks/:id/contributions", contributionHandler.ListByTask)

		v1.GET("/templates/:type", templateHandler.Get)

		v1.GET("/stats", statsHandler.Get)
	}

	return r
}
