package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
	"github.com/obe-automation/attainment-api/pkg/response"
)

type directoryLister interface {
	CLOsByCourse(ctx context.Context, courseID string) ([]models.CourseLearningOutcome, error)
	PLOsByProgram(ctx context.Context, programID string) ([]models.ProgramLearningOutcome, error)
	SectionsByFaculty(ctx context.Context, facultyID string) ([]models.Section, error)
}

// DirectoryHandler exposes the outcome and section directory endpoints.
type DirectoryHandler struct {
	directory directoryLister
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory directoryLister) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// CourseCLOs godoc
// @Summary Learning outcomes of a course
// @Tags Directory
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id}/clos [get]
func (h *DirectoryHandler) CourseCLOs(c *gin.Context) {
	clos, err := h.directory.CLOsByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clos, nil)
}

// ProgramPLOs godoc
// @Summary Learning outcomes of a program
// @Tags Directory
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{id}/plos [get]
func (h *DirectoryHandler) ProgramPLOs(c *gin.Context) {
	plos, err := h.directory.PLOsByProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plos, nil)
}

// MySections godoc
// @Summary Sections taught by the authenticated faculty member
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /faculty/sections [get]
func (h *DirectoryHandler) MySections(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	sections, err := h.directory.SectionsByFaculty(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections, nil)
}
