package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
	"github.com/obe-automation/attainment-api/pkg/export"
)

type cohortComputer interface {
	ComputeForCohort(ctx context.Context, sectionID, facultyID string, typeFilter models.AssessmentType) (*models.CohortCLOAttainment, error)
}

type overviewComputer interface {
	SectionOverview(ctx context.Context, sectionID, facultyID string, showStudents bool) (*models.SectionOverview, error)
}

// ExportRequest identifies the report to render.
type ExportRequest struct {
	SectionID string `validate:"required"`
	Format    string `validate:"omitempty,oneof=csv pdf"`
}

// ExportService renders cohort reports as downloadable CSV or PDF files.
type ExportService struct {
	attainment cohortComputer
	results    overviewComputer
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	validator  *validator.Validate
	enabled    bool
	logger     *zap.Logger
}

// ExportFile is a rendered document ready to stream to the client. ID
// tags the generated artifact for download audit logs.
type ExportFile struct {
	ID          string
	FileName    string
	ContentType string
	Content     []byte
}

// NewExportService constructs ExportService.
func NewExportService(attainment cohortComputer, results overviewComputer, csv *export.CSVExporter, pdf *export.PDFExporter, enabled bool, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		attainment: attainment,
		results:    results,
		csv:        csv,
		pdf:        pdf,
		validator:  validator.New(),
		enabled:    enabled,
		logger:     logger,
	}
}

// CohortAttainment renders the section's CLO attainment matrix, one row
// per student and one column per CLO.
func (s *ExportService) CohortAttainment(ctx context.Context, sectionID, facultyID, format string) (*ExportFile, error) {
	if err := s.checkRequest(sectionID, format); err != nil {
		return nil, err
	}
	cohort, err := s.attainment.ComputeForCohort(ctx, sectionID, facultyID, "")
	if err != nil {
		return nil, err
	}

	headers := []string{"Student ID", "Student Name"}
	for _, average := range cohort.PerCLOAverage {
		headers = append(headers, average.CLOCode)
	}
	rows := make([]map[string]string, 0, len(cohort.Students)+1)
	for _, student := range cohort.Students {
		row := map[string]string{
			"Student ID":   student.StudentID,
			"Student Name": student.StudentName,
		}
		for _, attainment := range student.Attainments {
			row[attainment.CLOCode] = fmt.Sprintf("%.2f", attainment.AttainmentPct)
		}
		rows = append(rows, row)
	}
	averageRow := map[string]string{"Student ID": "", "Student Name": "Class Average"}
	for _, average := range cohort.PerCLOAverage {
		averageRow[average.CLOCode] = fmt.Sprintf("%.2f", average.AveragePct)
	}
	rows = append(rows, averageRow)

	dataset := export.Dataset{Headers: headers, Rows: rows}
	name := fmt.Sprintf("clo-attainment-%s", sectionID)
	return s.render(dataset, name, "CLO Attainment", format)
}

// SectionResults renders the section overview, one row per student with
// per-type adjusted scores.
func (s *ExportService) SectionResults(ctx context.Context, sectionID, facultyID, format string) (*ExportFile, error) {
	if err := s.checkRequest(sectionID, format); err != nil {
		return nil, err
	}
	overview, err := s.results.SectionOverview(ctx, sectionID, facultyID, true)
	if err != nil {
		return nil, err
	}

	headers := []string{"Student ID", "Student Name"}
	for _, typ := range overview.Types {
		headers = append(headers, string(typ.Type))
	}
	headers = append(headers, "Total")
	rows := make([]map[string]string, 0, len(overview.Students))
	for _, student := range overview.Students {
		row := map[string]string{
			"Student ID":   student.StudentID,
			"Student Name": student.StudentName,
			"Total":        fmt.Sprintf("%.2f", student.AdjustedCourseScore),
		}
		for _, score := range student.TypeScores {
			row[string(score.Type)] = fmt.Sprintf("%.2f", score.AdjustedScore)
		}
		rows = append(rows, row)
	}

	dataset := export.Dataset{Headers: headers, Rows: rows}
	name := fmt.Sprintf("section-results-%s", sectionID)
	return s.render(dataset, name, "Section Results", format)
}

func (s *ExportService) checkRequest(sectionID, format string) error {
	if !s.enabled {
		return appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}
	req := ExportRequest{SectionID: sectionID, Format: format}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid export request for format %q", format))
	}
	return nil
}

func (s *ExportService) render(dataset export.Dataset, name, title, format string) (*ExportFile, error) {
	file := &ExportFile{ID: uuid.NewString()}
	switch format {
	case "csv", "":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv")
		}
		file.FileName = name + ".csv"
		file.ContentType = "text/csv"
		file.Content = content
	case "pdf":
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf")
		}
		file.FileName = name + ".pdf"
		file.ContentType = "application/pdf"
		file.Content = content
	}
	s.logger.Info("report exported", zap.String("export_id", file.ID), zap.String("file", file.FileName))
	return file, nil
}
