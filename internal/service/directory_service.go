package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
)

// DirectoryService serves the outcome and section directory endpoints
// that front the computation reports.
type DirectoryService struct {
	outcomes outcomeReader
	sections sectionLister
	logger   *zap.Logger
}

// NewDirectoryService constructs DirectoryService.
func NewDirectoryService(outcomes outcomeReader, sections sectionLister, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{outcomes: outcomes, sections: sections, logger: logger}
}

// CLOsByCourse lists a course's learning outcomes.
func (s *DirectoryService) CLOsByCourse(ctx context.Context, courseID string) ([]models.CourseLearningOutcome, error) {
	if _, err := s.outcomes.FindCourse(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load course")
	}
	clos, err := s.outcomes.CLOsByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list course outcomes")
	}
	return clos, nil
}

// PLOsByProgram lists a program's learning outcomes.
func (s *DirectoryService) PLOsByProgram(ctx context.Context, programID string) ([]models.ProgramLearningOutcome, error) {
	if _, err := s.outcomes.FindProgram(ctx, programID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load program")
	}
	plos, err := s.outcomes.PLOsByProgram(ctx, programID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list program outcomes")
	}
	return plos, nil
}

// SectionsByFaculty lists the sections a faculty member teaches.
func (s *DirectoryService) SectionsByFaculty(ctx context.Context, facultyID string) ([]models.Section, error) {
	if facultyID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty id required")
	}
	sections, err := s.sections.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list faculty sections")
	}
	return sections, nil
}
