package models

import (
	"fmt"
	"time"
)

// AssessmentType identifies one of the six graded activity buckets a
// section's final grade is split across.
type AssessmentType string

const (
	AssessmentTypeAssignment AssessmentType = "assignment"
	AssessmentTypeQuiz       AssessmentType = "quiz"
	AssessmentTypeLab        AssessmentType = "lab"
	AssessmentTypeMidterm    AssessmentType = "midterm"
	AssessmentTypeFinal      AssessmentType = "final"
	AssessmentTypeProject    AssessmentType = "project"
)

// AssessmentTypes returns the six types in their canonical reporting order.
func AssessmentTypes() []AssessmentType {
	return []AssessmentType{
		AssessmentTypeAssignment,
		AssessmentTypeQuiz,
		AssessmentTypeLab,
		AssessmentTypeMidterm,
		AssessmentTypeFinal,
		AssessmentTypeProject,
	}
}

// ValidAssessmentType reports whether raw names a known assessment type.
func ValidAssessmentType(raw string) bool {
	switch AssessmentType(raw) {
	case AssessmentTypeAssignment, AssessmentTypeQuiz, AssessmentTypeLab,
		AssessmentTypeMidterm, AssessmentTypeFinal, AssessmentTypeProject:
		return true
	}
	return false
}

// Program represents a degree program.
type Program struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Course represents a course offered within one or more programs.
type Course struct {
	ID   string `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// Section is a single offering of a course: one term, one instructor,
// one enrolled student set.
type Section struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	ProgramID string    `db:"program_id" json:"program_id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	Semester  string    `db:"semester" json:"semester"`
	Batch     string    `db:"batch" json:"batch"`
	Year      string    `db:"year" json:"year"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Student is the enrolled learner directory entry.
type Student struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
}

// AssessmentBreakdown allocates a section's final grade across the six
// assessment types. The persistence layer enforces that the weights sum
// to 100; the engine only reads them.
type AssessmentBreakdown struct {
	ID         string  `db:"id" json:"id"`
	SectionID  string  `db:"section_id" json:"section_id"`
	Assignment float64 `db:"assignment_weightage" json:"assignment_weightage"`
	Quiz       float64 `db:"quiz_weightage" json:"quiz_weightage"`
	Lab        float64 `db:"lab_weightage" json:"lab_weightage"`
	Midterm    float64 `db:"mid_weightage" json:"mid_weightage"`
	Final      float64 `db:"final_weightage" json:"final_weightage"`
	Project    float64 `db:"project_weightage" json:"project_weightage"`
}

// TypeWeights returns the per-type weight allocation as a map.
func (b *AssessmentBreakdown) TypeWeights() map[AssessmentType]float64 {
	return map[AssessmentType]float64{
		AssessmentTypeAssignment: b.Assignment,
		AssessmentTypeQuiz:       b.Quiz,
		AssessmentTypeLab:        b.Lab,
		AssessmentTypeMidterm:    b.Midterm,
		AssessmentTypeFinal:      b.Final,
		AssessmentTypeProject:    b.Project,
	}
}

// Assessment is one graded event within a section. Weightage is its
// share (0-100) of its type's bucket, not of the whole course.
type Assessment struct {
	ID        string         `db:"id" json:"id"`
	SectionID string         `db:"section_id" json:"section_id"`
	Title     string         `db:"title" json:"title"`
	Type      AssessmentType `db:"type" json:"type"`
	Weightage float64        `db:"weightage" json:"weightage"`
	Date      time.Time      `db:"date" json:"date"`
}

// Question belongs to one assessment and maps to zero or more CLOs.
// CLOIDs is populated by the repository from the mapping table.
type Question struct {
	ID           string   `db:"id" json:"id"`
	AssessmentID string   `db:"assessment_id" json:"assessment_id"`
	Text         string   `db:"text" json:"text"`
	Marks        float64  `db:"marks" json:"marks"`
	CLOIDs       []string `db:"-" json:"clo_ids"`
}

// CourseLearningOutcome is a per-course learning goal.
type CourseLearningOutcome struct {
	ID          string  `db:"id" json:"id"`
	CourseID    string  `db:"course_id" json:"course_id"`
	Number      int     `db:"number" json:"number"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Weightage   float64 `db:"weightage" json:"weightage"`
}

// Code returns the display code, e.g. "CLO3".
func (c CourseLearningOutcome) Code() string {
	return fmt.Sprintf("CLO%d", c.Number)
}

// ProgramLearningOutcome is a program-wide learning goal.
type ProgramLearningOutcome struct {
	ID          string  `db:"id" json:"id"`
	ProgramID   string  `db:"program_id" json:"program_id"`
	Number      int     `db:"number" json:"number"`
	Heading     string  `db:"heading" json:"heading"`
	Description string  `db:"description" json:"description"`
	Weightage   float64 `db:"weightage" json:"weightage"`
}

// Code returns the display code, e.g. "PLO1".
func (p ProgramLearningOutcome) Code() string {
	return fmt.Sprintf("PLO%d", p.Number)
}

// PLOCLOMapping links a CLO into a PLO with an explicit contribution
// weightage, scoped to one course within one program.
type PLOCLOMapping struct {
	ID        string  `db:"id" json:"id"`
	ProgramID string  `db:"program_id" json:"program_id"`
	CourseID  string  `db:"course_id" json:"course_id"`
	PLOID     string  `db:"plo_id" json:"plo_id"`
	CLOID     string  `db:"clo_id" json:"clo_id"`
	Weightage float64 `db:"weightage" json:"weightage"`
}

// StudentQuestionScore is the atomic grading fact: marks one student
// obtained on one question. Absence of a row means zero, not missing.
type StudentQuestionScore struct {
	ID            string  `db:"id" json:"id"`
	StudentID     string  `db:"student_id" json:"student_id"`
	QuestionID    string  `db:"question_id" json:"question_id"`
	MarksObtained float64 `db:"marks_obtained" json:"marks_obtained"`
}
