package service

import (
	"context"
	"database/sql"

	"github.com/obe-automation/attainment-api/internal/models"
)

type mockSectionRepo struct {
	sections   map[string]*models.Section
	breakdowns map[string]*models.AssessmentBreakdown
}

func (m *mockSectionRepo) FindByID(ctx context.Context, id string) (*models.Section, error) {
	section, ok := m.sections[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return section, nil
}

func (m *mockSectionRepo) BreakdownBySection(ctx context.Context, sectionID string) (*models.AssessmentBreakdown, error) {
	breakdown, ok := m.breakdowns[sectionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return breakdown, nil
}

type mockAssessmentRepo struct {
	bySection map[string][]models.Assessment
	questions map[string][]models.Question
}

func (m *mockAssessmentRepo) ListBySection(ctx context.Context, sectionID string, typeFilter models.AssessmentType) ([]models.Assessment, error) {
	var result []models.Assessment
	for _, assessment := range m.bySection[sectionID] {
		if typeFilter != "" && assessment.Type != typeFilter {
			continue
		}
		result = append(result, assessment)
	}
	return result, nil
}

func (m *mockAssessmentRepo) QuestionsByAssessments(ctx context.Context, assessmentIDs []string) ([]models.Question, error) {
	var result []models.Question
	for _, id := range assessmentIDs {
		result = append(result, m.questions[id]...)
	}
	return result, nil
}

type mockRosterRepo struct {
	rosters map[string][]models.Student
}

func (m *mockRosterRepo) ListBySection(ctx context.Context, sectionID string) ([]models.Student, error) {
	return m.rosters[sectionID], nil
}

func (m *mockRosterRepo) IsEnrolled(ctx context.Context, sectionID, studentID string) (bool, error) {
	for _, student := range m.rosters[sectionID] {
		if student.ID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRosterRepo) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	for _, students := range m.rosters {
		for i := range students {
			if students[i].ID == id {
				return &students[i], nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

type mockScoreRepo struct {
	scores []models.StudentQuestionScore
}

func (m *mockScoreRepo) ListByQuestions(ctx context.Context, questionIDs, studentIDs []string) ([]models.StudentQuestionScore, error) {
	wantQuestion := make(map[string]bool, len(questionIDs))
	for _, id := range questionIDs {
		wantQuestion[id] = true
	}
	wantStudent := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		wantStudent[id] = true
	}
	var result []models.StudentQuestionScore
	for _, score := range m.scores {
		if !wantQuestion[score.QuestionID] {
			continue
		}
		if len(wantStudent) > 0 && !wantStudent[score.StudentID] {
			continue
		}
		result = append(result, score)
	}
	return result, nil
}

type mockOutcomeRepo struct {
	closByCourse map[string][]models.CourseLearningOutcome
	plos         map[string]*models.ProgramLearningOutcome
	plosByProg   map[string][]models.ProgramLearningOutcome
	mappings     map[string][]models.PLOCLOMapping
	courses      map[string]*models.Course
	programs     map[string]*models.Program
}

func (m *mockOutcomeRepo) CLOsByCourse(ctx context.Context, courseID string) ([]models.CourseLearningOutcome, error) {
	return m.closByCourse[courseID], nil
}

func (m *mockOutcomeRepo) PLOsByProgram(ctx context.Context, programID string) ([]models.ProgramLearningOutcome, error) {
	return m.plosByProg[programID], nil
}

func (m *mockOutcomeRepo) FindPLO(ctx context.Context, id string) (*models.ProgramLearningOutcome, error) {
	plo, ok := m.plos[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return plo, nil
}

func (m *mockOutcomeRepo) MappingsByPLO(ctx context.Context, ploID string) ([]models.PLOCLOMapping, error) {
	return m.mappings[ploID], nil
}

func (m *mockOutcomeRepo) FindCourse(ctx context.Context, id string) (*models.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return course, nil
}

func (m *mockOutcomeRepo) FindProgram(ctx context.Context, id string) (*models.Program, error) {
	program, ok := m.programs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return program, nil
}

type mockSectionLister struct {
	byFaculty       map[string][]models.Section
	byCourseStudent map[string][]models.Section
}

func (m *mockSectionLister) ListByFaculty(ctx context.Context, facultyID string) ([]models.Section, error) {
	return m.byFaculty[facultyID], nil
}

func (m *mockSectionLister) ListByCourseAndStudent(ctx context.Context, courseID, studentID string) ([]models.Section, error) {
	return m.byCourseStudent[courseID+"|"+studentID], nil
}

// quizFixture is the canonical single-quiz section: quiz bucket worth 20
// points of the course, one quiz at full bucket weight, one 10-mark
// question mapped to CLO1, two enrolled students scoring 8 and 5.
type quizFixture struct {
	sections    *mockSectionRepo
	assessments *mockAssessmentRepo
	roster      *mockRosterRepo
	scores      *mockScoreRepo
	outcomes    *mockOutcomeRepo
}

func newQuizFixture() *quizFixture {
	section := &models.Section{
		ID: "sec-1", CourseID: "course-1", ProgramID: "prog-1", FacultyID: "fac-1",
		Semester: "Fall", Year: "2025", Status: "active",
	}
	return &quizFixture{
		sections: &mockSectionRepo{
			sections: map[string]*models.Section{"sec-1": section},
			breakdowns: map[string]*models.AssessmentBreakdown{
				"sec-1": {ID: "bd-1", SectionID: "sec-1", Quiz: 20, Midterm: 30, Final: 50},
			},
		},
		assessments: &mockAssessmentRepo{
			bySection: map[string][]models.Assessment{
				"sec-1": {{ID: "quiz-1", SectionID: "sec-1", Title: "Quiz 1", Type: models.AssessmentTypeQuiz, Weightage: 100}},
			},
			questions: map[string][]models.Question{
				"quiz-1": {{ID: "q-1", AssessmentID: "quiz-1", Marks: 10, CLOIDs: []string{"clo-1"}}},
			},
		},
		roster: &mockRosterRepo{
			rosters: map[string][]models.Student{
				"sec-1": {{ID: "stu-1", FullName: "Amina Khan"}, {ID: "stu-2", FullName: "Bilal Raza"}},
			},
		},
		scores: &mockScoreRepo{
			scores: []models.StudentQuestionScore{
				{ID: "sc-1", StudentID: "stu-1", QuestionID: "q-1", MarksObtained: 8},
				{ID: "sc-2", StudentID: "stu-2", QuestionID: "q-1", MarksObtained: 5},
			},
		},
		outcomes: &mockOutcomeRepo{
			closByCourse: map[string][]models.CourseLearningOutcome{
				"course-1": {
					{ID: "clo-1", CourseID: "course-1", Number: 1, Title: "Apply fundamentals"},
					{ID: "clo-2", CourseID: "course-1", Number: 2, Title: "Analyse systems"},
				},
			},
			courses:  map[string]*models.Course{"course-1": {ID: "course-1", Code: "CS101", Name: "Intro"}},
			programs: map[string]*models.Program{"prog-1": {ID: "prog-1", Name: "BSCS"}},
		},
	}
}

func (f *quizFixture) attainmentService() *AttainmentService {
	return NewAttainmentService(f.sections, f.assessments, f.roster, f.scores, f.outcomes, nil, nil)
}

func (f *quizFixture) resultService() *ResultService {
	return NewResultService(f.sections, f.assessments, f.roster, f.scores, nil, nil)
}
