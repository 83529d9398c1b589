package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/obe-automation/attainment-api/internal/models"
)

// AssessmentRepository reads assessments, their questions and the
// question-to-CLO mapping rows.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new assessment repository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// ListBySection returns the section's assessments, optionally filtered
// by assessment type.
func (r *AssessmentRepository) ListBySection(ctx context.Context, sectionID string, typeFilter models.AssessmentType) ([]models.Assessment, error) {
	query := `SELECT id, section_id, title, type, weightage, date FROM assessments WHERE section_id = $1`
	args := []interface{}{sectionID}
	if typeFilter != "" {
		query += " AND type = $2"
		args = append(args, typeFilter)
	}
	query += " ORDER BY date, title"
	var assessments []models.Assessment
	if err := r.db.SelectContext(ctx, &assessments, query, args...); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

// QuestionsByAssessments returns all questions of the given assessments
// with their CLO links attached, fetched in two bulk queries.
func (r *AssessmentRepository) QuestionsByAssessments(ctx context.Context, assessmentIDs []string) ([]models.Question, error) {
	if len(assessmentIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(assessmentIDs))
	args := make([]interface{}, len(assessmentIDs))
	for i, id := range assessmentIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT id, assessment_id, text, marks FROM questions
        WHERE assessment_id IN (%s) ORDER BY assessment_id, id`, strings.Join(placeholders, ","))
	var questions []models.Question
	if err := r.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return questions, nil
	}
	questionIDs := make([]string, len(questions))
	for i := range questions {
		questionIDs[i] = questions[i].ID
	}
	links, err := r.cloLinks(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].CLOIDs = links[questions[i].ID]
	}
	return questions, nil
}

func (r *AssessmentRepository) cloLinks(ctx context.Context, questionIDs []string) (map[string][]string, error) {
	placeholders := make([]string, len(questionIDs))
	args := make([]interface{}, len(questionIDs))
	for i, id := range questionIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT question_id, clo_id FROM question_clos
        WHERE question_id IN (%s) ORDER BY question_id, clo_id`, strings.Join(placeholders, ","))
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list question clo links: %w", err)
	}
	defer rows.Close()
	links := make(map[string][]string, len(questionIDs))
	for rows.Next() {
		var questionID, cloID string
		if err := rows.Scan(&questionID, &cloID); err != nil {
			return nil, fmt.Errorf("scan question clo link: %w", err)
		}
		links[questionID] = append(links[questionID], cloID)
	}
	return links, rows.Err()
}
