package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obe-automation/attainment-api/internal/middleware"
	"github.com/obe-automation/attainment-api/internal/service"
)

// Router owns the HTTP surface: every report endpoint grouped under the
// API prefix behind JWT auth.
type Router struct {
	attainment *AttainmentHandler
	results    *ResultHandler
	plos       *PLOHandler
	directory  *DirectoryHandler
	exports    *ExportHandler
	metrics    *service.MetricsService
	jwtSecret  string
}

// NewRouter constructs the router from its handlers.
func NewRouter(attainment *AttainmentHandler, results *ResultHandler, plos *PLOHandler, directory *DirectoryHandler, exports *ExportHandler, metrics *service.MetricsService, jwtSecret string) *Router {
	return &Router{
		attainment: attainment,
		results:    results,
		plos:       plos,
		directory:  directory,
		exports:    exports,
		metrics:    metrics,
		jwtSecret:  jwtSecret,
	}
}

// Setup registers all routes on the engine.
func (r *Router) Setup(engine *gin.Engine, apiPrefix string) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))

	v1 := engine.Group(apiPrefix)
	v1.Use(middleware.Metrics(r.metrics))
	v1.Use(middleware.JWT(r.jwtSecret))
	{
		sections := v1.Group("/sections/:id")
		{
			sections.GET("/attainment", r.attainment.CohortAttainment)
			sections.GET("/attainment/students/:studentId", r.attainment.StudentAttainment)

			sections.GET("/results/overview", r.results.Overview)
			sections.GET("/results/students/:studentId", r.results.StudentResult)
			sections.GET("/results/types/:type", r.results.TypeDetails)
			sections.GET("/results/assessments/:assessmentId", r.results.AssessmentDetails)

			sections.GET("/exports/attainment", r.exports.Attainment)
			sections.GET("/exports/results", r.exports.Results)
		}

		v1.GET("/plos/:id/students/:studentId", r.plos.StudentPLO)

		programs := v1.Group("/programs/:id")
		{
			programs.GET("/plos", r.directory.ProgramPLOs)
			programs.GET("/students/:studentId/attainment", r.plos.StudentProgram)
		}

		v1.GET("/courses/:id/clos", r.directory.CourseCLOs)
		v1.GET("/faculty/sections", r.directory.MySections)
	}
}
