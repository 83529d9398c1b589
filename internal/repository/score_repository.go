package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/obe-automation/attainment-api/internal/models"
)

// ScoreRepository reads per-question marks. All reads are bulk: the
// engine fetches every score it needs for a report in a single query.
type ScoreRepository struct {
	db *sqlx.DB
}

// NewScoreRepository creates a new score repository.
func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// ListByQuestions returns scores for the given questions. When
// studentIDs is non-empty the result is restricted to those students.
func (r *ScoreRepository) ListByQuestions(ctx context.Context, questionIDs, studentIDs []string) ([]models.StudentQuestionScore, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(questionIDs))
	args := make([]interface{}, 0, len(questionIDs)+len(studentIDs))
	for i, id := range questionIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, id)
	}
	query := fmt.Sprintf(`SELECT id, student_id, question_id, marks_obtained
        FROM student_question_scores WHERE question_id IN (%s)`, strings.Join(placeholders, ","))
	if len(studentIDs) > 0 {
		studentPlaceholders := make([]string, len(studentIDs))
		for i, id := range studentIDs {
			studentPlaceholders[i] = fmt.Sprintf("$%d", len(questionIDs)+i+1)
			args = append(args, id)
		}
		query += fmt.Sprintf(" AND student_id IN (%s)", strings.Join(studentPlaceholders, ","))
	}
	var scores []models.StudentQuestionScore
	if err := r.db.SelectContext(ctx, &scores, query, args...); err != nil {
		return nil, fmt.Errorf("list scores by questions: %w", err)
	}
	return scores, nil
}
