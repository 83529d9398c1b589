package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
)

// ResultService computes the traditional grade view: marks rolled up
// from questions through assessments and type buckets to a weighted
// final score, plus the faculty drill-down reports at section, type and
// assessment level.
type ResultService struct {
	loader  snapshotLoader
	roster  rosterReader
	metrics *MetricsService
	logger  *zap.Logger
}

// NewResultService constructs ResultService.
func NewResultService(sections sectionReader, assessments assessmentReader, roster rosterReader, scores scoreReader, metrics *MetricsService, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{
		loader:  snapshotLoader{sections: sections, assessments: assessments, scores: scores},
		roster:  roster,
		metrics: metrics,
		logger:  logger,
	}
}

// ComputeFinalResult returns one student's weighted course result.
// FinalScore is what the student has earned so far; CourseCompletion is
// how much of the grade is currently covered by configured assessments.
// The gap between them is work not yet assessed, not marks lost.
func (s *ResultService) ComputeFinalResult(ctx context.Context, sectionID, studentID, facultyID string) (*models.FinalResult, error) {
	start := time.Now()
	snapshot, err := s.loader.load(ctx, sectionID, []string{studentID}, "")
	if err != nil {
		return nil, err
	}
	if err := requireFacultyOwnership(snapshot.section, facultyID); err != nil {
		return nil, err
	}

	enrolled, err := s.roster.IsEnrolled(ctx, sectionID, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check enrollment")
	}
	if !enrolled {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not enrolled in section")
	}

	result := &models.FinalResult{SectionID: sectionID, StudentID: studentID}
	totalWeight := 0.0
	finalScore := 0.0
	completion := 0.0

	for _, typ := range models.AssessmentTypes() {
		typeWeight, ok := snapshot.typeWeights[typ]
		if !ok {
			continue
		}
		totalWeight += typeWeight

		rollup := models.TypeRollup{Type: typ, AllocatedWeight: typeWeight}
		typeObtained := 0.0
		typeTotal := 0.0
		weightageSum := 0.0

		for _, assessment := range snapshot.assessments {
			if assessment.Type != typ {
				continue
			}
			questions := snapshot.questions[assessment.ID]
			assessmentTotal := 0.0
			assessmentObtained := 0.0
			questionRows := make([]models.QuestionResult, 0, len(questions))
			for _, question := range questions {
				obtained := snapshot.scores.obtained(question.ID, studentID)
				assessmentTotal += question.Marks
				assessmentObtained += obtained
				questionRows = append(questionRows, models.QuestionResult{
					QuestionID:    question.ID,
					TotalMarks:    question.Marks,
					ObtainedMarks: obtained,
					Percentage:    round2(ratio(obtained, question.Marks) * 100),
				})
			}

			effective := assessmentEffectiveWeight(assessment.Weightage, typeWeight)
			rollup.Assessments = append(rollup.Assessments, models.AssessmentRollup{
				AssessmentID:    assessment.ID,
				Title:           assessment.Title,
				Type:            typ,
				Weightage:       assessment.Weightage,
				EffectiveWeight: round2(effective),
				TotalMarks:      assessmentTotal,
				ObtainedMarks:   assessmentObtained,
				Percentage:      round2(ratio(assessmentObtained, assessmentTotal) * 100),
				Contribution:    round2(ratio(assessmentObtained, assessmentTotal) * effective),
				Questions:       questionRows,
			})

			typeObtained += assessmentObtained
			typeTotal += assessmentTotal
			weightageSum += assessment.Weightage
		}

		contribution := ratio(typeObtained, typeTotal) * typeWeight
		typeCompletion := (weightageSum / 100) * typeWeight

		rollup.TotalMarks = round2(typeTotal)
		rollup.ObtainedMarks = round2(typeObtained)
		rollup.EarnedPct = round2(ratio(typeObtained, typeTotal) * 100)
		rollup.Contribution = round2(contribution)
		rollup.CompletionPct = round2(typeCompletion)
		result.Types = append(result.Types, rollup)

		finalScore += contribution
		completion += typeCompletion
	}

	result.TotalWeight = round2(totalWeight)
	result.FinalScore = round2(finalScore)
	result.CourseCompletion = round2(completion)
	s.metrics.ObserveComputation("final_result", time.Since(start))
	return result, nil
}

// SectionOverview returns the cohort-level summary faculty land on: one
// row per assessment type plus one row per student. Per-student rows are
// always computed because the cohort statistics need them; showStudents
// only controls whether they appear in the payload.
func (s *ResultService) SectionOverview(ctx context.Context, sectionID, facultyID string, showStudents bool) (*models.SectionOverview, error) {
	start := time.Now()
	snapshot, err := s.loader.load(ctx, sectionID, nil, "")
	if err != nil {
		return nil, err
	}
	if err := requireFacultyOwnership(snapshot.section, facultyID); err != nil {
		return nil, err
	}

	students, err := s.roster.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load roster")
	}

	overview := &models.SectionOverview{SectionID: sectionID}
	completion := 0.0
	adjustedByType := make(map[models.AssessmentType][]float64)
	courseScores := make([]float64, 0, len(students))

	for _, student := range students {
		row := models.StudentOverviewRow{StudentID: student.ID, StudentName: student.FullName}
		courseAdjusted := 0.0
		totalObtained := 0.0
		totalMarks := 0.0

		for _, typ := range models.AssessmentTypes() {
			typeWeight, ok := snapshot.typeWeights[typ]
			if !ok {
				continue
			}
			obtained, total := s.typeTotals(snapshot, typ, student.ID)
			adjusted := ratio(obtained, total) * typeWeight
			row.TypeScores = append(row.TypeScores, models.StudentTypeScore{
				Type:          typ,
				ObtainedScore: round2(obtained),
				AdjustedScore: round2(adjusted),
			})
			adjustedByType[typ] = append(adjustedByType[typ], adjusted)
			courseAdjusted += adjusted
			totalObtained += obtained
			totalMarks += total
		}

		row.TotalScore = round2(totalObtained)
		row.Percentage = round2(ratio(totalObtained, totalMarks) * 100)
		row.AdjustedCourseScore = round2(courseAdjusted)
		courseScores = append(courseScores, courseAdjusted)
		if showStudents {
			overview.Students = append(overview.Students, row)
		}
	}

	for _, typ := range models.AssessmentTypes() {
		typeWeight, ok := snapshot.typeWeights[typ]
		if !ok {
			continue
		}
		count := 0
		totalMarks := 0.0
		weightageSum := 0.0
		for _, assessment := range snapshot.assessments {
			if assessment.Type != typ {
				continue
			}
			count++
			weightageSum += assessment.Weightage
			for _, question := range snapshot.questions[assessment.ID] {
				totalMarks += question.Marks
			}
		}
		typeCompletion := (weightageSum / 100) * typeWeight
		completion += typeCompletion
		overview.Types = append(overview.Types, models.TypeOverview{
			Type:            typ,
			AssessmentCount: count,
			AllocatedWeight: typeWeight,
			TotalMarks:      round2(totalMarks),
			CompletionPct:   round2(typeCompletion),
			Stats:           stats(adjustedByType[typ]),
		})
	}

	overview.CourseCompletion = round2(completion)
	overview.StudentPerformance = stats(courseScores)
	s.metrics.ObserveComputation("section_overview", time.Since(start))
	return overview, nil
}

// TypeDetails returns the drill-down into one assessment type: cohort
// statistics per assessment plus per-student rows.
func (s *ResultService) TypeDetails(ctx context.Context, sectionID string, typ models.AssessmentType, facultyID string, showStudents bool) (*models.TypeDetails, error) {
	start := time.Now()
	if !models.ValidAssessmentType(string(typ)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown assessment type")
	}
	snapshot, err := s.loader.load(ctx, sectionID, nil, "")
	if err != nil {
		return nil, err
	}
	if err := requireFacultyOwnership(snapshot.section, facultyID); err != nil {
		return nil, err
	}

	students, err := s.roster.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load roster")
	}

	typeWeight := snapshot.typeWeights[typ]
	details := &models.TypeDetails{SectionID: sectionID, Type: typ, AllocatedWeight: typeWeight}
	weightageSum := 0.0

	type assessmentView struct {
		assessment models.Assessment
		totalMarks float64
		effective  float64
	}
	views := make([]assessmentView, 0)
	for _, assessment := range snapshot.assessments {
		if assessment.Type != typ {
			continue
		}
		totalMarks := 0.0
		for _, question := range snapshot.questions[assessment.ID] {
			totalMarks += question.Marks
		}
		weightageSum += assessment.Weightage
		views = append(views, assessmentView{
			assessment: assessment,
			totalMarks: totalMarks,
			effective:  assessmentEffectiveWeight(assessment.Weightage, typeWeight),
		})
	}
	details.CompletionPct = round2((weightageSum / 100) * typeWeight)

	percentages := make(map[string][]float64, len(views))
	for _, student := range students {
		row := models.StudentTypeRow{StudentID: student.ID, StudentName: student.FullName}
		typeScore := 0.0
		obtainedSum := 0.0
		totalSum := 0.0
		for _, view := range views {
			obtained := 0.0
			for _, question := range snapshot.questions[view.assessment.ID] {
				obtained += snapshot.scores.obtained(question.ID, student.ID)
			}
			pct := ratio(obtained, view.totalMarks) * 100
			adjusted := ratio(obtained, view.totalMarks) * view.effective
			percentages[view.assessment.ID] = append(percentages[view.assessment.ID], pct)
			row.Assessments = append(row.Assessments, models.StudentAssessmentScore{
				AssessmentID:  view.assessment.ID,
				Title:         view.assessment.Title,
				TotalMarks:    view.totalMarks,
				ObtainedMarks: round2(obtained),
				Percentage:    round2(pct),
				AdjustedScore: round2(adjusted),
			})
			typeScore += adjusted
			obtainedSum += obtained
			totalSum += view.totalMarks
		}
		row.TypeScore = round2(typeScore)
		row.Percentage = round2(ratio(obtainedSum, totalSum) * 100)
		if showStudents {
			details.Students = append(details.Students, row)
		}
	}

	for _, view := range views {
		details.Assessments = append(details.Assessments, models.AssessmentStat{
			AssessmentID:       view.assessment.ID,
			Title:              view.assessment.Title,
			TotalMarks:         round2(view.totalMarks),
			Weightage:          view.assessment.Weightage,
			AdjustedTotalMarks: round2(view.effective),
			Stats:              stats(percentages[view.assessment.ID]),
		})
	}
	s.metrics.ObserveComputation("type_details", time.Since(start))
	return details, nil
}

// AssessmentDetails returns the deepest drill-down: per-question cohort
// statistics for one assessment plus per-student score rows.
func (s *ResultService) AssessmentDetails(ctx context.Context, sectionID, assessmentID, facultyID string, showStudents bool) (*models.AssessmentDetails, error) {
	start := time.Now()
	snapshot, err := s.loader.load(ctx, sectionID, nil, "")
	if err != nil {
		return nil, err
	}
	if err := requireFacultyOwnership(snapshot.section, facultyID); err != nil {
		return nil, err
	}

	var assessment *models.Assessment
	for i := range snapshot.assessments {
		if snapshot.assessments[i].ID == assessmentID {
			assessment = &snapshot.assessments[i]
			break
		}
	}
	if assessment == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found in section")
	}

	students, err := s.roster.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load roster")
	}

	questions := snapshot.questions[assessmentID]
	totalMarks := 0.0
	for _, question := range questions {
		totalMarks += question.Marks
	}

	details := &models.AssessmentDetails{
		SectionID:    sectionID,
		AssessmentID: assessmentID,
		Title:        assessment.Title,
		Type:         assessment.Type,
		TotalMarks:   round2(totalMarks),
	}

	obtainedByQuestion := make(map[string][]float64, len(questions))
	for _, student := range students {
		row := models.StudentQuestionRow{StudentID: student.ID, StudentName: student.FullName}
		obtainedSum := 0.0
		for _, question := range questions {
			obtained := snapshot.scores.obtained(question.ID, student.ID)
			obtainedSum += obtained
			obtainedByQuestion[question.ID] = append(obtainedByQuestion[question.ID], obtained)
			row.Questions = append(row.Questions, models.QuestionResult{
				QuestionID:    question.ID,
				TotalMarks:    question.Marks,
				ObtainedMarks: obtained,
				Percentage:    round2(ratio(obtained, question.Marks) * 100),
			})
		}
		row.Obtained = round2(obtainedSum)
		row.Percentage = round2(ratio(obtainedSum, totalMarks) * 100)
		if showStudents {
			details.Students = append(details.Students, row)
		}
	}

	for _, question := range questions {
		details.Questions = append(details.Questions, models.QuestionStat{
			QuestionID: question.ID,
			TotalMarks: question.Marks,
			Stats:      stats(obtainedByQuestion[question.ID]),
		})
	}
	s.metrics.ObserveComputation("assessment_details", time.Since(start))
	return details, nil
}

func (s *ResultService) typeTotals(snapshot *sectionSnapshot, typ models.AssessmentType, studentID string) (obtained, total float64) {
	for _, assessment := range snapshot.assessments {
		if assessment.Type != typ {
			continue
		}
		for _, question := range snapshot.questions[assessment.ID] {
			obtained += snapshot.scores.obtained(question.ID, studentID)
			total += question.Marks
		}
	}
	return obtained, total
}

// stats summarises a score series; an empty series reads as all zeros.
func stats(values []float64) models.PerformanceStats {
	if len(values) == 0 {
		return models.PerformanceStats{}
	}
	sum := values[0]
	highest := values[0]
	lowest := values[0]
	for _, value := range values[1:] {
		sum += value
		if value > highest {
			highest = value
		}
		if value < lowest {
			lowest = value
		}
	}
	return models.PerformanceStats{
		Average: round2(sum / float64(len(values))),
		Highest: round2(highest),
		Lowest:  round2(lowest),
	}
}
