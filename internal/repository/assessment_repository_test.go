package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/obe-automation/attainment-api/internal/models"
)

func newAssessmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAssessmentRepositoryListBySection(t *testing.T) {
	db, mock, cleanup := newAssessmentRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "section_id", "title", "type", "weightage", "date"}).
		AddRow("asmt-1", "sec-1", "Quiz 1", models.AssessmentTypeQuiz, 50.0, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM assessments WHERE section_id = $1 AND type = $2")).
		WithArgs("sec-1", models.AssessmentTypeQuiz).
		WillReturnRows(rows)

	assessments, err := repo.ListBySection(context.Background(), "sec-1", models.AssessmentTypeQuiz)
	require.NoError(t, err)
	require.Len(t, assessments, 1)
	require.Equal(t, models.AssessmentTypeQuiz, assessments[0].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryQuestionsByAssessmentsAttachesCLOs(t *testing.T) {
	db, mock, cleanup := newAssessmentRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	questionRows := sqlmock.NewRows([]string{"id", "assessment_id", "text", "marks"}).
		AddRow("q-1", "asmt-1", "Explain normalisation", 10.0).
		AddRow("q-2", "asmt-1", "Write a join", 5.0)
	mock.ExpectQuery(regexp.QuoteMeta("FROM questions\n        WHERE assessment_id IN ($1)")).
		WithArgs("asmt-1").
		WillReturnRows(questionRows)

	linkRows := sqlmock.NewRows([]string{"question_id", "clo_id"}).
		AddRow("q-1", "clo-1").
		AddRow("q-1", "clo-2")
	mock.ExpectQuery(regexp.QuoteMeta("FROM question_clos\n        WHERE question_id IN ($1,$2)")).
		WithArgs("q-1", "q-2").
		WillReturnRows(linkRows)

	questions, err := repo.QuestionsByAssessments(context.Background(), []string{"asmt-1"})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	require.Equal(t, []string{"clo-1", "clo-2"}, questions[0].CLOIDs)
	require.Empty(t, questions[1].CLOIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryQuestionsByAssessmentsEmptyInput(t *testing.T) {
	db, mock, cleanup := newAssessmentRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	questions, err := repo.QuestionsByAssessments(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, questions)
	require.NoError(t, mock.ExpectationsWereMet())
}
