package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
)

type cloComputer interface {
	ComputeForStudent(ctx context.Context, sectionID, studentID, facultyID string, typeFilter models.AssessmentType) (*models.StudentCLOAttainment, error)
}

type studentFinder interface {
	FindStudent(ctx context.Context, id string) (*models.Student, error)
}

// PLOService rolls CLO attainment up to program learning outcomes. Each
// PLO is a weighted average of the mapped CLO attainments, normalised by
// the sum of the mapping weights actually contributing. Mappings whose
// course the student never took are skipped on both sides of the
// division, so untaken courses neither help nor hurt.
type PLOService struct {
	outcomes   outcomeReader
	sections   sectionLister
	students   studentFinder
	attainment cloComputer
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewPLOService constructs PLOService.
func NewPLOService(outcomes outcomeReader, sections sectionLister, students studentFinder, attainment cloComputer, metrics *MetricsService, logger *zap.Logger) *PLOService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PLOService{outcomes: outcomes, sections: sections, students: students, attainment: attainment, metrics: metrics, logger: logger}
}

// ComputeForStudent returns one student's attainment of one PLO.
func (s *PLOService) ComputeForStudent(ctx context.Context, ploID, studentID string) (*models.PLOAttainment, error) {
	start := time.Now()
	plo, err := s.outcomes.FindPLO(ctx, ploID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program learning outcome not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load plo")
	}
	if err := s.checkStudent(ctx, studentID); err != nil {
		return nil, err
	}

	result, err := s.computePLO(ctx, plo, studentID, make(map[string]map[string]cloCell))
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveComputation("plo_student", time.Since(start))
	return result, nil
}

// ComputeProgramForStudent returns a student's attainment across every
// PLO of a program. CLO tables are computed once per section and shared
// across the PLOs that draw on the same course.
func (s *PLOService) ComputeProgramForStudent(ctx context.Context, programID, studentID string) (*models.ProgramAttainment, error) {
	start := time.Now()
	if _, err := s.outcomes.FindProgram(ctx, programID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load program")
	}
	if err := s.checkStudent(ctx, studentID); err != nil {
		return nil, err
	}

	plos, err := s.outcomes.PLOsByProgram(ctx, programID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load program outcomes")
	}

	attainment := &models.ProgramAttainment{ProgramID: programID, StudentID: studentID}
	cloCache := make(map[string]map[string]cloCell)
	for i := range plos {
		ploResult, err := s.computePLO(ctx, &plos[i], studentID, cloCache)
		if err != nil {
			return nil, err
		}
		attainment.PLOs = append(attainment.PLOs, *ploResult)
	}
	s.metrics.ObserveComputation("plo_program", time.Since(start))
	return attainment, nil
}

// checkStudent rejects rollups for students missing from the directory,
// so an unknown ID reads as not found rather than an all-zero report.
func (s *PLOService) checkStudent(ctx context.Context, studentID string) error {
	if _, err := s.students.FindStudent(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load student")
	}
	return nil
}

type cloCell struct {
	pct  float64
	code string
}

func (s *PLOService) computePLO(ctx context.Context, plo *models.ProgramLearningOutcome, studentID string, cloCache map[string]map[string]cloCell) (*models.PLOAttainment, error) {
	mappings, err := s.outcomes.MappingsByPLO(ctx, plo.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load plo mappings")
	}

	result := &models.PLOAttainment{
		PLOID:   plo.ID,
		PLOCode: plo.Code(),
		Heading: plo.Heading,
	}

	weightedSum := 0.0
	weightSum := 0.0
	sectionByCourse := make(map[string]string)

	for _, mapping := range mappings {
		sectionID, seen := sectionByCourse[mapping.CourseID]
		if !seen {
			sections, err := s.sections.ListByCourseAndStudent(ctx, mapping.CourseID, studentID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve course section")
			}
			if len(sections) == 0 {
				sectionByCourse[mapping.CourseID] = ""
				s.logger.Debug("student has no section for mapped course",
					zap.String("course_id", mapping.CourseID),
					zap.String("student_id", studentID))
				continue
			}
			sectionID = sections[0].ID
			sectionByCourse[mapping.CourseID] = sectionID
		}
		if sectionID == "" {
			continue
		}

		cloTable, cached := cloCache[sectionID]
		if !cached {
			student, err := s.attainment.ComputeForStudent(ctx, sectionID, studentID, "", "")
			if err != nil {
				return nil, err
			}
			cloTable = make(map[string]cloCell, len(student.CLOs))
			for _, clo := range student.CLOs {
				cloTable[clo.CLOID] = cloCell{pct: clo.AttainmentPct, code: clo.CLOCode}
			}
			cloCache[sectionID] = cloTable
		}

		cell, ok := cloTable[mapping.CLOID]
		if !ok {
			continue
		}
		weightedSum += mapping.Weightage * cell.pct
		weightSum += mapping.Weightage
		result.Contributions = append(result.Contributions, models.PLOCourseContribution{
			CourseID:         mapping.CourseID,
			SectionID:        sectionID,
			CLOID:            mapping.CLOID,
			CLOCode:          cell.code,
			MappingWeight:    mapping.Weightage,
			CLOAttainmentPct: cell.pct,
		})
	}

	result.AttainmentPct = round2(ratio(weightedSum, weightSum))
	result.WeightSum = round2(weightSum)
	return result, nil
}
