package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
)

func TestComputeFinalResultSingleQuiz(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	result, err := svc.ComputeFinalResult(context.Background(), "sec-1", "stu-1", "")
	require.NoError(t, err)

	// 8/10 on a quiz bucket worth 20 earns 16 points; only the quiz
	// bucket has assessments so completion sits at 20 of 100.
	assert.Equal(t, 100.0, result.TotalWeight)
	assert.Equal(t, 16.0, result.FinalScore)
	assert.Equal(t, 20.0, result.CourseCompletion)

	require.Len(t, result.Types, 3)
	quiz := result.Types[0]
	assert.Equal(t, models.AssessmentTypeQuiz, quiz.Type)
	assert.Equal(t, 20.0, quiz.AllocatedWeight)
	assert.Equal(t, 20.0, quiz.CompletionPct)
	assert.Equal(t, 80.0, quiz.EarnedPct)
	assert.Equal(t, 16.0, quiz.Contribution)
	require.Len(t, quiz.Assessments, 1)
	assert.Equal(t, 16.0, quiz.Assessments[0].Contribution)

	midterm := result.Types[1]
	assert.Equal(t, 0.0, midterm.CompletionPct)
	assert.Equal(t, 0.0, midterm.Contribution)
}

func TestComputeFinalResultNotEnrolled(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	_, err := svc.ComputeFinalResult(context.Background(), "sec-1", "stu-unknown", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSectionOverview(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	overview, err := svc.SectionOverview(context.Background(), "sec-1", "fac-1", true)
	require.NoError(t, err)

	assert.Equal(t, 20.0, overview.CourseCompletion)
	require.Len(t, overview.Students, 2)
	assert.Equal(t, 16.0, overview.Students[0].AdjustedCourseScore)
	assert.Equal(t, 10.0, overview.Students[1].AdjustedCourseScore)

	// Adjusted course scores are 16 and 10.
	assert.Equal(t, 13.0, overview.StudentPerformance.Average)
	assert.Equal(t, 16.0, overview.StudentPerformance.Highest)
	assert.Equal(t, 10.0, overview.StudentPerformance.Lowest)

	require.Len(t, overview.Types, 3)
	assert.Equal(t, 1, overview.Types[0].AssessmentCount)
	assert.Equal(t, 10.0, overview.Types[0].TotalMarks)
}

func TestSectionOverviewSummaryOnly(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	overview, err := svc.SectionOverview(context.Background(), "sec-1", "", false)
	require.NoError(t, err)

	// Student rows stay out of the payload but still feed the stats.
	assert.Empty(t, overview.Students)
	assert.Equal(t, 13.0, overview.StudentPerformance.Average)
	assert.Equal(t, 16.0, overview.StudentPerformance.Highest)
}

func TestSectionOverviewEmptyRoster(t *testing.T) {
	fixture := newQuizFixture()
	fixture.roster.rosters["sec-1"] = nil
	svc := fixture.resultService()

	overview, err := svc.SectionOverview(context.Background(), "sec-1", "", true)
	require.NoError(t, err)
	assert.Empty(t, overview.Students)
	assert.Equal(t, models.PerformanceStats{}, overview.StudentPerformance)
}

func TestTypeDetails(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	details, err := svc.TypeDetails(context.Background(), "sec-1", models.AssessmentTypeQuiz, "fac-1", true)
	require.NoError(t, err)

	assert.Equal(t, 20.0, details.AllocatedWeight)
	assert.Equal(t, 20.0, details.CompletionPct)
	require.Len(t, details.Assessments, 1)
	assert.Equal(t, 20.0, details.Assessments[0].AdjustedTotalMarks)
	assert.Equal(t, 65.0, details.Assessments[0].Stats.Average)

	require.Len(t, details.Students, 2)
	assert.Equal(t, 16.0, details.Students[0].TypeScore)
	assert.Equal(t, 80.0, details.Students[0].Percentage)
}

func TestTypeDetailsUnknownType(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	_, err := svc.TypeDetails(context.Background(), "sec-1", "homework", "", true)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssessmentDetails(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	details, err := svc.AssessmentDetails(context.Background(), "sec-1", "quiz-1", "fac-1", true)
	require.NoError(t, err)

	assert.Equal(t, "Quiz 1", details.Title)
	assert.Equal(t, 10.0, details.TotalMarks)
	require.Len(t, details.Questions, 1)
	assert.Equal(t, 6.5, details.Questions[0].Stats.Average)
	require.Len(t, details.Students, 2)
	assert.Equal(t, 8.0, details.Students[0].Obtained)
	assert.Equal(t, 80.0, details.Students[0].Percentage)
}

func TestAssessmentDetailsNotInSection(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	_, err := svc.AssessmentDetails(context.Background(), "sec-1", "quiz-missing", "", true)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSectionOverviewForeignFacultyForbidden(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.resultService()

	_, err := svc.SectionOverview(context.Background(), "sec-1", "fac-other", true)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
