package service

import (
	"github.com/obe-automation/attainment-api/internal/models"
)

type scoreKey struct {
	questionID string
	studentID  string
}

// scoreIndex indexes bulk-fetched marks by question and student. A
// missing entry reads as zero: an ungraded or skipped question counts
// as nothing obtained, never as an error.
type scoreIndex map[scoreKey]float64

func buildScoreIndex(scores []models.StudentQuestionScore) scoreIndex {
	index := make(scoreIndex, len(scores))
	for _, score := range scores {
		index[scoreKey{questionID: score.QuestionID, studentID: score.StudentID}] = score.MarksObtained
	}
	return index
}

func (idx scoreIndex) obtained(questionID, studentID string) float64 {
	return idx[scoreKey{questionID: questionID, studentID: studentID}]
}
