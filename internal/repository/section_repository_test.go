package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newSectionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSectionRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newSectionRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_id", "program_id", "faculty_id", "semester", "batch", "year", "status", "created_at"}).
		AddRow("sec-1", "course-1", "prog-1", "fac-1", "Fall", "2022", "2025", "active", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM sections WHERE id = $1")).
		WithArgs("sec-1").
		WillReturnRows(rows)

	section, err := repo.FindByID(context.Background(), "sec-1")
	require.NoError(t, err)
	require.Equal(t, "fac-1", section.FacultyID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepositoryBreakdownMissing(t *testing.T) {
	db, mock, cleanup := newSectionRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM assessment_breakdowns WHERE section_id = $1")).
		WithArgs("sec-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.BreakdownBySection(context.Background(), "sec-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
