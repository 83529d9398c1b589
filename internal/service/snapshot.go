package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
)

type sectionReader interface {
	FindByID(ctx context.Context, id string) (*models.Section, error)
	BreakdownBySection(ctx context.Context, sectionID string) (*models.AssessmentBreakdown, error)
}

type assessmentReader interface {
	ListBySection(ctx context.Context, sectionID string, typeFilter models.AssessmentType) ([]models.Assessment, error)
	QuestionsByAssessments(ctx context.Context, assessmentIDs []string) ([]models.Question, error)
}

type rosterReader interface {
	ListBySection(ctx context.Context, sectionID string) ([]models.Student, error)
	IsEnrolled(ctx context.Context, sectionID, studentID string) (bool, error)
}

type scoreReader interface {
	ListByQuestions(ctx context.Context, questionIDs, studentIDs []string) ([]models.StudentQuestionScore, error)
}

type outcomeReader interface {
	CLOsByCourse(ctx context.Context, courseID string) ([]models.CourseLearningOutcome, error)
	PLOsByProgram(ctx context.Context, programID string) ([]models.ProgramLearningOutcome, error)
	FindPLO(ctx context.Context, id string) (*models.ProgramLearningOutcome, error)
	MappingsByPLO(ctx context.Context, ploID string) ([]models.PLOCLOMapping, error)
	FindCourse(ctx context.Context, id string) (*models.Course, error)
	FindProgram(ctx context.Context, id string) (*models.Program, error)
}

type sectionLister interface {
	ListByFaculty(ctx context.Context, facultyID string) ([]models.Section, error)
	ListByCourseAndStudent(ctx context.Context, courseID, studentID string) ([]models.Section, error)
}

// sectionSnapshot is everything a single report computation needs,
// fetched up front in a fixed number of queries regardless of cohort
// size.
type sectionSnapshot struct {
	section     *models.Section
	typeWeights map[models.AssessmentType]float64
	assessments []models.Assessment
	questions   map[string][]models.Question
	scores      scoreIndex
}

// snapshotLoader assembles section snapshots from the read repositories.
type snapshotLoader struct {
	sections    sectionReader
	assessments assessmentReader
	scores      scoreReader
}

// load fetches the section, its breakdown, assessments, questions and
// the score rows for the given students (all enrolled students when
// studentIDs is empty). A non-empty typeFilter restricts the snapshot
// to assessments of that type; the breakdown weights stay untouched so
// filtered reports keep their course-level scale.
func (l *snapshotLoader) load(ctx context.Context, sectionID string, studentIDs []string, typeFilter models.AssessmentType) (*sectionSnapshot, error) {
	section, err := l.sections.FindByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load section")
	}

	breakdown, err := l.sections.BreakdownBySection(ctx, sectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrBreakdownMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load assessment breakdown")
	}

	assessments, err := l.assessments.ListBySection(ctx, sectionID, typeFilter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load assessments")
	}

	assessmentIDs := make([]string, len(assessments))
	for i := range assessments {
		assessmentIDs[i] = assessments[i].ID
	}
	questions, err := l.assessments.QuestionsByAssessments(ctx, assessmentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load questions")
	}

	questionsByAssessment := make(map[string][]models.Question, len(assessments))
	questionIDs := make([]string, 0, len(questions))
	for _, question := range questions {
		questionsByAssessment[question.AssessmentID] = append(questionsByAssessment[question.AssessmentID], question)
		questionIDs = append(questionIDs, question.ID)
	}

	scores, err := l.scores.ListByQuestions(ctx, questionIDs, studentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load scores")
	}

	return &sectionSnapshot{
		section:     section,
		typeWeights: effectiveTypeWeights(breakdown),
		assessments: assessments,
		questions:   questionsByAssessment,
		scores:      buildScoreIndex(scores),
	}, nil
}

// checkTypeFilter rejects filters that name no known assessment type.
// An empty filter means all types.
func checkTypeFilter(typeFilter models.AssessmentType) error {
	if typeFilter != "" && !models.ValidAssessmentType(string(typeFilter)) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown assessment type")
	}
	return nil
}

// requireFacultyOwnership enforces that reports requested on behalf of a
// faculty member only cover their own sections. An empty facultyID means
// the caller is trusted (admin or internal use).
func requireFacultyOwnership(section *models.Section, facultyID string) error {
	if facultyID != "" && section.FacultyID != facultyID {
		return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("section %s is not taught by the requesting faculty", section.ID))
	}
	return nil
}
