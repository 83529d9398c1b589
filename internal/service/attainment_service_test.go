package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
)

func TestComputeForStudentSingleQuiz(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	result, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
	require.NoError(t, err)
	require.Len(t, result.CLOs, 2)

	clo1 := result.CLOs[0]
	assert.Equal(t, "CLO1", clo1.CLOCode)
	assert.Equal(t, 20.0, clo1.TotalMarks)
	assert.Equal(t, 16.0, clo1.ObtainedMarks)
	assert.Equal(t, 80.0, clo1.AttainmentPct)

	clo2 := result.CLOs[1]
	assert.Equal(t, 0.0, clo2.TotalMarks)
	assert.Equal(t, 0.0, clo2.AttainmentPct)
}

func TestComputeForStudentMultiCLOSplit(t *testing.T) {
	fixture := newQuizFixture()
	fixture.assessments.questions["quiz-1"] = []models.Question{
		{ID: "q-1", AssessmentID: "quiz-1", Marks: 10, CLOIDs: []string{"clo-1", "clo-2"}},
	}
	svc := fixture.attainmentService()

	result, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
	require.NoError(t, err)

	// The 20-point question splits evenly across both CLOs and both read
	// the same percentage.
	assert.Equal(t, 10.0, result.CLOs[0].TotalMarks)
	assert.Equal(t, 10.0, result.CLOs[1].TotalMarks)
	assert.Equal(t, 80.0, result.CLOs[0].AttainmentPct)
	assert.Equal(t, 80.0, result.CLOs[1].AttainmentPct)
}

func TestComputeForStudentSkipsUnmappedQuestions(t *testing.T) {
	fixture := newQuizFixture()
	fixture.assessments.questions["quiz-1"] = []models.Question{
		{ID: "q-1", AssessmentID: "quiz-1", Marks: 10, CLOIDs: []string{"clo-1"}},
		{ID: "q-2", AssessmentID: "quiz-1", Marks: 10, CLOIDs: nil},
	}
	fixture.scores.scores = append(fixture.scores.scores, models.StudentQuestionScore{
		ID: "sc-3", StudentID: "stu-1", QuestionID: "q-2", MarksObtained: 10,
	})
	svc := fixture.attainmentService()

	result, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
	require.NoError(t, err)

	// Only the mapped half of the quiz reaches CLO1.
	assert.Equal(t, 10.0, result.CLOs[0].TotalMarks)
	assert.Equal(t, 8.0, result.CLOs[0].ObtainedMarks)
	assert.Equal(t, 80.0, result.CLOs[0].AttainmentPct)
}

func TestComputeForStudentZeroWeightTypeExcluded(t *testing.T) {
	fixture := newQuizFixture()
	fixture.sections.breakdowns["sec-1"] = &models.AssessmentBreakdown{
		ID: "bd-1", SectionID: "sec-1", Quiz: 0, Midterm: 50, Final: 50,
	}
	svc := fixture.attainmentService()

	result, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.CLOs[0].TotalMarks)
	assert.Equal(t, 0.0, result.CLOs[0].AttainmentPct)
}

func TestComputeForStudentPerTypeBreakdown(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	result, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
	require.NoError(t, err)

	require.Len(t, result.CLOs[0].PerType, 1)
	perType := result.CLOs[0].PerType[0]
	assert.Equal(t, models.AssessmentTypeQuiz, perType.Type)
	assert.Equal(t, 20.0, perType.TotalWeight)
	assert.Equal(t, 16.0, perType.ObtainedScore)
	assert.Equal(t, 80.0, perType.AttainmentPct)

	require.Len(t, result.CLOs[0].Questions, 1)
	assert.Equal(t, 1, result.CLOs[0].Questions[0].MappedCLOCount)
}

func TestComputeForStudentSectionNotFound(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	_, err := svc.ComputeForStudent(context.Background(), "missing", "stu-1", "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestComputeForStudentBreakdownMissing(t *testing.T) {
	fixture := newQuizFixture()
	delete(fixture.sections.breakdowns, "sec-1")
	svc := fixture.attainmentService()

	_, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBreakdownMissing.Code, appErrors.FromError(err).Code)
}

func TestComputeForStudentForeignFacultyForbidden(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	_, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "fac-other", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "fac-1", "")
	require.NoError(t, err)
}

func TestComputeForStudentNotEnrolled(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	_, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-unknown", "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestComputeForCohortAverages(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	cohort, err := svc.ComputeForCohort(context.Background(), "sec-1", "fac-1", "")
	require.NoError(t, err)
	require.Len(t, cohort.Students, 2)
	require.Len(t, cohort.PerCLOAverage, 2)

	// stu-1 attains 80, stu-2 attains 50.
	assert.Equal(t, 65.0, cohort.PerCLOAverage[0].AveragePct)
	assert.Equal(t, 0.0, cohort.PerCLOAverage[1].AveragePct)
}

func TestComputeForCohortEmptyRoster(t *testing.T) {
	fixture := newQuizFixture()
	fixture.roster.rosters["sec-1"] = nil
	svc := fixture.attainmentService()

	cohort, err := svc.ComputeForCohort(context.Background(), "sec-1", "", "")
	require.NoError(t, err)
	assert.Empty(t, cohort.Students)
	require.Len(t, cohort.PerCLOAverage, 2)
	assert.Equal(t, 0.0, cohort.PerCLOAverage[0].AveragePct)
}

func TestComputeForStudentWithoutScoreRows(t *testing.T) {
	fixture := newQuizFixture()
	fixture.roster.rosters["sec-1"] = append(fixture.roster.rosters["sec-1"],
		models.Student{ID: "stu-3", FullName: "Chand Noor"})
	svc := fixture.attainmentService()

	// Enrolled but never graded: absent rows read as zero marks, not as
	// an error or a smaller denominator.
	result, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-3", "", "")
	require.NoError(t, err)
	assert.Equal(t, 20.0, result.CLOs[0].TotalMarks)
	assert.Equal(t, 0.0, result.CLOs[0].ObtainedMarks)
	assert.Equal(t, 0.0, result.CLOs[0].AttainmentPct)
}

func TestComputeForCohortIncludesUnscoredStudents(t *testing.T) {
	fixture := newQuizFixture()
	fixture.roster.rosters["sec-1"] = append(fixture.roster.rosters["sec-1"],
		models.Student{ID: "stu-3", FullName: "Chand Noor"})
	svc := fixture.attainmentService()

	cohort, err := svc.ComputeForCohort(context.Background(), "sec-1", "", "")
	require.NoError(t, err)
	require.Len(t, cohort.Students, 3)

	// (80 + 50 + 0) / 3
	assert.Equal(t, 43.33, cohort.PerCLOAverage[0].AveragePct)
}

func TestComputeForStudentMonotonicInScore(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	previous := -1.0
	for marks := 0.0; marks <= 10.0; marks++ {
		fixture.scores.scores[0].MarksObtained = marks
		result, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.CLOs[0].AttainmentPct, previous)
		previous = result.CLOs[0].AttainmentPct
	}
	assert.Equal(t, 100.0, previous)
}

func TestComputeForStudentTypeFilter(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	result, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", models.AssessmentTypeQuiz)
	require.NoError(t, err)
	assert.Equal(t, 80.0, result.CLOs[0].AttainmentPct)

	// Filtering to a type with no assessments leaves nothing to attain.
	result, err = svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", models.AssessmentTypeMidterm)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.CLOs[0].TotalMarks)
	assert.Equal(t, 0.0, result.CLOs[0].AttainmentPct)
}

func TestComputeForStudentUnknownTypeFilter(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	_, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "homework")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestComputeForStudentIdempotent(t *testing.T) {
	fixture := newQuizFixture()
	svc := fixture.attainmentService()

	first, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
	require.NoError(t, err)
	second, err := svc.ComputeForStudent(context.Background(), "sec-1", "stu-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
