package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obe-automation/attainment-api/internal/service"
	"github.com/obe-automation/attainment-api/pkg/response"
)

type reportExporter interface {
	CohortAttainment(ctx context.Context, sectionID, facultyID, format string) (*service.ExportFile, error)
	SectionResults(ctx context.Context, sectionID, facultyID, format string) (*service.ExportFile, error)
}

// ExportHandler streams rendered report files.
type ExportHandler struct {
	exports reportExporter
}

// NewExportHandler constructs handler.
func NewExportHandler(exports reportExporter) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Attainment godoc
// @Summary Download the section's CLO attainment matrix
// @Tags Exports
// @Produce text/csv
// @Param id path string true "Section ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /sections/{id}/exports/attainment [get]
func (h *ExportHandler) Attainment(c *gin.Context) {
	file, err := h.exports.CohortAttainment(c.Request.Context(), c.Param("id"), facultyScope(c), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// Results godoc
// @Summary Download the section's result overview
// @Tags Exports
// @Produce text/csv
// @Param id path string true "Section ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /sections/{id}/exports/results [get]
func (h *ExportHandler) Results(c *gin.Context) {
	file, err := h.exports.SectionResults(c.Request.Context(), c.Param("id"), facultyScope(c), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

func serveFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Header("X-Export-Id", file.ID)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
