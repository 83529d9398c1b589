package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obe-automation/attainment-api/internal/models"
	"github.com/obe-automation/attainment-api/pkg/response"
)

type ploComputer interface {
	ComputeForStudent(ctx context.Context, ploID, studentID string) (*models.PLOAttainment, error)
	ComputeProgramForStudent(ctx context.Context, programID, studentID string) (*models.ProgramAttainment, error)
}

// PLOHandler exposes program-level attainment rollups.
type PLOHandler struct {
	plos ploComputer
}

// NewPLOHandler constructs handler.
func NewPLOHandler(plos ploComputer) *PLOHandler {
	return &PLOHandler{plos: plos}
}

// StudentPLO godoc
// @Summary Attainment of one PLO for one student
// @Tags PLO
// @Produce json
// @Param id path string true "PLO ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plos/{id}/students/{studentId} [get]
func (h *PLOHandler) StudentPLO(c *gin.Context) {
	result, err := h.plos.ComputeForStudent(c.Request.Context(), c.Param("id"), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// StudentProgram godoc
// @Summary Attainment across all PLOs of a program for one student
// @Tags PLO
// @Produce json
// @Param id path string true "Program ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{id}/students/{studentId}/attainment [get]
func (h *PLOHandler) StudentProgram(c *gin.Context) {
	result, err := h.plos.ComputeProgramForStudent(c.Request.Context(), c.Param("id"), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
