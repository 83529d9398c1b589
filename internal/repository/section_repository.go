package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/obe-automation/attainment-api/internal/models"
)

// SectionRepository reads section and breakdown configuration.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository creates a new section repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// FindByID returns a section by ID.
func (r *SectionRepository) FindByID(ctx context.Context, id string) (*models.Section, error) {
	const query = `SELECT id, course_id, program_id, faculty_id, semester, batch, year, status, created_at
        FROM sections WHERE id = $1`
	var section models.Section
	if err := r.db.GetContext(ctx, &section, query, id); err != nil {
		return nil, err
	}
	return &section, nil
}

// BreakdownBySection returns the assessment breakdown configured for a
// section. sql.ErrNoRows propagates when none exists; the service layer
// maps it to the configuration error.
func (r *SectionRepository) BreakdownBySection(ctx context.Context, sectionID string) (*models.AssessmentBreakdown, error) {
	const query = `SELECT id, section_id, assignment_weightage, quiz_weightage, lab_weightage,
        mid_weightage, final_weightage, project_weightage
        FROM assessment_breakdowns WHERE section_id = $1`
	var breakdown models.AssessmentBreakdown
	if err := r.db.GetContext(ctx, &breakdown, query, sectionID); err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// ListByFaculty returns sections taught by the given faculty member.
func (r *SectionRepository) ListByFaculty(ctx context.Context, facultyID string) ([]models.Section, error) {
	const query = `SELECT id, course_id, program_id, faculty_id, semester, batch, year, status, created_at
        FROM sections WHERE faculty_id = $1 ORDER BY year DESC, semester DESC`
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, facultyID); err != nil {
		return nil, fmt.Errorf("list sections by faculty: %w", err)
	}
	return sections, nil
}

// ListByCourseAndStudent returns the sections of a course the student is
// enrolled in, most recent offering first.
func (r *SectionRepository) ListByCourseAndStudent(ctx context.Context, courseID, studentID string) ([]models.Section, error) {
	const query = `SELECT s.id, s.course_id, s.program_id, s.faculty_id, s.semester, s.batch, s.year, s.status, s.created_at
        FROM sections s
        JOIN section_students ss ON ss.section_id = s.id
        WHERE s.course_id = $1 AND ss.student_id = $2
        ORDER BY s.year DESC, s.semester DESC`
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, courseID, studentID); err != nil {
		return nil, fmt.Errorf("list sections by course and student: %w", err)
	}
	return sections, nil
}
