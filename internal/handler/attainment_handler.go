package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obe-automation/attainment-api/internal/models"
	"github.com/obe-automation/attainment-api/internal/service"
	"github.com/obe-automation/attainment-api/pkg/response"
)

type attainmentComputer interface {
	ComputeForStudent(ctx context.Context, sectionID, studentID, facultyID string, typeFilter models.AssessmentType) (*models.StudentCLOAttainment, error)
	ComputeForCohort(ctx context.Context, sectionID, facultyID string, typeFilter models.AssessmentType) (*models.CohortCLOAttainment, error)
}

// AttainmentHandler exposes CLO attainment endpoints.
type AttainmentHandler struct {
	attainment attainmentComputer
	cache      *service.CacheService
}

// NewAttainmentHandler constructs handler.
func NewAttainmentHandler(attainment attainmentComputer, cache *service.CacheService) *AttainmentHandler {
	return &AttainmentHandler{attainment: attainment, cache: cache}
}

// StudentAttainment godoc
// @Summary Per-CLO attainment for one student in a section
// @Tags Attainment
// @Produce json
// @Param id path string true "Section ID"
// @Param studentId path string true "Student ID"
// @Param type query string false "Restrict to one assessment type"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /sections/{id}/attainment/students/{studentId} [get]
func (h *AttainmentHandler) StudentAttainment(c *gin.Context) {
	result, err := h.attainment.ComputeForStudent(c.Request.Context(), c.Param("id"), c.Param("studentId"), facultyScope(c), models.AssessmentType(c.Query("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CohortAttainment godoc
// @Summary Per-CLO cohort averages for a section
// @Tags Attainment
// @Produce json
// @Param id path string true "Section ID"
// @Param type query string false "Restrict to one assessment type"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /sections/{id}/attainment [get]
func (h *AttainmentHandler) CohortAttainment(c *gin.Context) {
	sectionID := c.Param("id")
	scope := facultyScope(c)
	typeFilter := models.AssessmentType(c.Query("type"))
	key := service.ReportKey(sectionID, "clo-cohort", scope, string(typeFilter))

	var cached models.CohortCLOAttainment
	if hit, _ := h.cache.Get(c.Request.Context(), key, &cached); hit {
		response.JSON(c, http.StatusOK, &cached, nil)
		return
	}

	cohort, err := h.attainment.ComputeForCohort(c.Request.Context(), sectionID, scope, typeFilter)
	if err != nil {
		response.Error(c, err)
		return
	}
	_ = h.cache.Set(c.Request.Context(), key, cohort, 0)
	response.JSON(c, http.StatusOK, cohort, nil)
}
