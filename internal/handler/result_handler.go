package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obe-automation/attainment-api/internal/models"
	"github.com/obe-automation/attainment-api/internal/service"
	"github.com/obe-automation/attainment-api/pkg/response"
)

type resultComputer interface {
	ComputeFinalResult(ctx context.Context, sectionID, studentID, facultyID string) (*models.FinalResult, error)
	SectionOverview(ctx context.Context, sectionID, facultyID string, showStudents bool) (*models.SectionOverview, error)
	TypeDetails(ctx context.Context, sectionID string, typ models.AssessmentType, facultyID string, showStudents bool) (*models.TypeDetails, error)
	AssessmentDetails(ctx context.Context, sectionID, assessmentID, facultyID string, showStudents bool) (*models.AssessmentDetails, error)
}

// showStudents reads the ?students= toggle; student rows are included
// unless explicitly disabled.
func showStudents(c *gin.Context) bool {
	return c.DefaultQuery("students", "true") != "false"
}

// ResultHandler exposes the traditional grade endpoints and the faculty
// drill-down reports.
type ResultHandler struct {
	results resultComputer
	cache   *service.CacheService
}

// NewResultHandler constructs handler.
func NewResultHandler(results resultComputer, cache *service.CacheService) *ResultHandler {
	return &ResultHandler{results: results, cache: cache}
}

// StudentResult godoc
// @Summary Weighted final result for one student in a section
// @Tags Results
// @Produce json
// @Param id path string true "Section ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /sections/{id}/results/students/{studentId} [get]
func (h *ResultHandler) StudentResult(c *gin.Context) {
	result, err := h.results.ComputeFinalResult(c.Request.Context(), c.Param("id"), c.Param("studentId"), facultyScope(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Overview godoc
// @Summary Section-level result overview
// @Tags Results
// @Produce json
// @Param id path string true "Section ID"
// @Param students query bool false "Include per-student rows" default(true)
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /sections/{id}/results/overview [get]
func (h *ResultHandler) Overview(c *gin.Context) {
	sectionID := c.Param("id")
	scope := facultyScope(c)
	withStudents := showStudents(c)
	keyParts := []string{scope}
	if !withStudents {
		keyParts = append(keyParts, "summary")
	}
	key := service.ReportKey(sectionID, "overview", keyParts...)

	var cached models.SectionOverview
	if hit, _ := h.cache.Get(c.Request.Context(), key, &cached); hit {
		response.JSON(c, http.StatusOK, &cached, nil)
		return
	}

	overview, err := h.results.SectionOverview(c.Request.Context(), sectionID, scope, withStudents)
	if err != nil {
		response.Error(c, err)
		return
	}
	_ = h.cache.Set(c.Request.Context(), key, overview, 0)
	response.JSON(c, http.StatusOK, overview, nil)
}

// TypeDetails godoc
// @Summary Drill-down into one assessment type of a section
// @Tags Results
// @Produce json
// @Param id path string true "Section ID"
// @Param type path string true "Assessment type"
// @Param students query bool false "Include per-student rows" default(true)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sections/{id}/results/types/{type} [get]
func (h *ResultHandler) TypeDetails(c *gin.Context) {
	details, err := h.results.TypeDetails(c.Request.Context(), c.Param("id"), models.AssessmentType(c.Param("type")), facultyScope(c), showStudents(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}

// AssessmentDetails godoc
// @Summary Drill-down into one assessment of a section
// @Tags Results
// @Produce json
// @Param id path string true "Section ID"
// @Param assessmentId path string true "Assessment ID"
// @Param students query bool false "Include per-student rows" default(true)
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sections/{id}/results/assessments/{assessmentId} [get]
func (h *ResultHandler) AssessmentDetails(c *gin.Context) {
	details, err := h.results.AssessmentDetails(c.Request.Context(), c.Param("id"), c.Param("assessmentId"), facultyScope(c), showStudents(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}
