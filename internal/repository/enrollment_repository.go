package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/obe-automation/attainment-api/internal/models"
)

// EnrollmentRepository reads section rosters.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListBySection returns the students enrolled in a section, ordered by name.
func (r *EnrollmentRepository) ListBySection(ctx context.Context, sectionID string) ([]models.Student, error) {
	const query = `SELECT s.id, s.full_name FROM students s
        JOIN section_students ss ON ss.student_id = s.id
        WHERE ss.section_id = $1 ORDER BY s.full_name, s.id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, sectionID); err != nil {
		return nil, fmt.Errorf("list students by section: %w", err)
	}
	return students, nil
}

// IsEnrolled reports whether the student belongs to the section roster.
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, sectionID, studentID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM section_students WHERE section_id = $1 AND student_id = $2)`
	var enrolled bool
	if err := r.db.GetContext(ctx, &enrolled, query, sectionID, studentID); err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return enrolled, nil
}

// FindStudent returns a student directory entry.
func (r *EnrollmentRepository) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, full_name FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}
