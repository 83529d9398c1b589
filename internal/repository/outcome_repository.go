package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/obe-automation/attainment-api/internal/models"
)

// OutcomeRepository reads the CLO/PLO directory and the CLO-to-PLO
// mapping table.
type OutcomeRepository struct {
	db *sqlx.DB
}

// NewOutcomeRepository creates a new outcome repository.
func NewOutcomeRepository(db *sqlx.DB) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

// CLOsByCourse returns the course's learning outcomes ordered by number.
func (r *OutcomeRepository) CLOsByCourse(ctx context.Context, courseID string) ([]models.CourseLearningOutcome, error) {
	const query = `SELECT id, course_id, number, title, description, weightage
        FROM course_learning_outcomes WHERE course_id = $1 ORDER BY number`
	var clos []models.CourseLearningOutcome
	if err := r.db.SelectContext(ctx, &clos, query, courseID); err != nil {
		return nil, fmt.Errorf("list clos by course: %w", err)
	}
	return clos, nil
}

// PLOsByProgram returns the program's learning outcomes ordered by number.
func (r *OutcomeRepository) PLOsByProgram(ctx context.Context, programID string) ([]models.ProgramLearningOutcome, error) {
	const query = `SELECT id, program_id, number, heading, description, weightage
        FROM program_learning_outcomes WHERE program_id = $1 ORDER BY number`
	var plos []models.ProgramLearningOutcome
	if err := r.db.SelectContext(ctx, &plos, query, programID); err != nil {
		return nil, fmt.Errorf("list plos by program: %w", err)
	}
	return plos, nil
}

// FindPLO returns a single program learning outcome.
func (r *OutcomeRepository) FindPLO(ctx context.Context, id string) (*models.ProgramLearningOutcome, error) {
	const query = `SELECT id, program_id, number, heading, description, weightage
        FROM program_learning_outcomes WHERE id = $1`
	var plo models.ProgramLearningOutcome
	if err := r.db.GetContext(ctx, &plo, query, id); err != nil {
		return nil, err
	}
	return &plo, nil
}

// MappingsByPLO returns every CLO mapping feeding the given PLO.
func (r *OutcomeRepository) MappingsByPLO(ctx context.Context, ploID string) ([]models.PLOCLOMapping, error) {
	const query = `SELECT id, program_id, course_id, plo_id, clo_id, weightage
        FROM plo_clo_mappings WHERE plo_id = $1 ORDER BY course_id, clo_id`
	var mappings []models.PLOCLOMapping
	if err := r.db.SelectContext(ctx, &mappings, query, ploID); err != nil {
		return nil, fmt.Errorf("list mappings by plo: %w", err)
	}
	return mappings, nil
}

// FindCourse returns a course by ID.
func (r *OutcomeRepository) FindCourse(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, code, name FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindProgram returns a program by ID.
func (r *OutcomeRepository) FindProgram(ctx context.Context, id string) (*models.Program, error) {
	const query = `SELECT id, name FROM programs WHERE id = $1`
	var program models.Program
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		return nil, err
	}
	return &program, nil
}
