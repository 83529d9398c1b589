package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/obe-automation/attainment-api/internal/models"
	appErrors "github.com/obe-automation/attainment-api/pkg/errors"
)

// AttainmentService computes CLO attainment for single students and for
// whole section cohorts. All weight resolution follows the same chain:
// breakdown allocates the course across types, each assessment takes a
// share of its type, each question takes a marks-proportional share of
// its assessment, and that share splits equally across its mapped CLOs.
type AttainmentService struct {
	loader   snapshotLoader
	roster   rosterReader
	outcomes outcomeReader
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewAttainmentService constructs AttainmentService.
func NewAttainmentService(sections sectionReader, assessments assessmentReader, roster rosterReader, scores scoreReader, outcomes outcomeReader, metrics *MetricsService, logger *zap.Logger) *AttainmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttainmentService{
		loader:   snapshotLoader{sections: sections, assessments: assessments, scores: scores},
		roster:   roster,
		outcomes: outcomes,
		metrics:  metrics,
		logger:   logger,
	}
}

// ComputeForStudent returns the per-CLO attainment of one student in one
// section. When facultyID is non-empty the section must belong to that
// faculty member. A non-empty typeFilter restricts the view to questions
// of a single assessment type.
func (s *AttainmentService) ComputeForStudent(ctx context.Context, sectionID, studentID, facultyID string, typeFilter models.AssessmentType) (*models.StudentCLOAttainment, error) {
	start := time.Now()
	if err := checkTypeFilter(typeFilter); err != nil {
		return nil, err
	}
	snapshot, err := s.loader.load(ctx, sectionID, []string{studentID}, typeFilter)
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

	clos, err := s.courseCLOs(ctx, snapshot.section.CourseID)
	if err != nil {
		return nil, err
	}

	result := &models.StudentCLOAttainment{
		SectionID: sectionID,
		StudentID: studentID,
		CLOs:      s.computeCLOTable(snapshot, clos, studentID, true),
	}
	s.metrics.ObserveComputation("clo_student", time.Since(start))
	return result, nil
}

// ComputeForCohort returns per-CLO cohort averages for a section along
// with the per-student rows behind them. An empty roster yields zeroed
// averages rather than an error.
func (s *AttainmentService) ComputeForCohort(ctx context.Context, sectionID, facultyID string, typeFilter models.AssessmentType) (*models.CohortCLOAttainment, error) {
	start := time.Now()
	if err := checkTypeFilter(typeFilter); err != nil {
		return nil, err
	}
	snapshot, err := s.loader.load(ctx, sectionID, nil, typeFilter)
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

	clos, err := s.courseCLOs(ctx, snapshot.section.CourseID)
	if err != nil {
		return nil, err
	}

	cohort := &models.CohortCLOAttainment{SectionID: sectionID}
	sums := make(map[string]float64, len(clos))
	for _, student := range students {
		table := s.computeCLOTable(snapshot, clos, student.ID, false)
		for _, attainment := range table {
			sums[attainment.CLOID] += attainment.AttainmentPct
		}
		cohort.Students = append(cohort.Students, models.StudentCLOSummary{
			StudentID:   student.ID,
			StudentName: student.FullName,
			Attainments: table,
		})
	}

	for _, clo := range clos {
		average := 0.0
		if len(students) > 0 {
			average = round2(sums[clo.ID] / float64(len(students)))
		}
		cohort.PerCLOAverage = append(cohort.PerCLOAverage, models.CLOAverage{
			CLOID:      clo.ID,
			CLOCode:    clo.Code(),
			Title:      clo.Title,
			AveragePct: average,
		})
	}
	s.metrics.ObserveComputation("clo_cohort", time.Since(start))
	return cohort, nil
}

func (s *AttainmentService) courseCLOs(ctx context.Context, courseID string) ([]models.CourseLearningOutcome, error) {
	clos, err := s.outcomes.CLOsByCourse(ctx, courseID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load course outcomes")
	}
	return clos, nil
}

type cloAccumulator struct {
	totalShare    float64
	obtainedShare float64
	perType       map[models.AssessmentType]*models.CLOTypeContribution
	questions     []models.QuestionContribution
}

// computeCLOTable walks every question in the snapshot once and folds
// each question's effective weight into the CLOs it maps to. Questions
// that carry weight but map to no CLO are reported and skipped so the
// outcome view stays consistent with the grade view minus the unmapped
// portion.
func (s *AttainmentService) computeCLOTable(snapshot *sectionSnapshot, clos []models.CourseLearningOutcome, studentID string, detailed bool) []models.CLOAttainment {
	accumulators := make(map[string]*cloAccumulator, len(clos))
	for _, clo := range clos {
		accumulators[clo.ID] = &cloAccumulator{perType: make(map[models.AssessmentType]*models.CLOTypeContribution)}
	}

	for _, assessment := range snapshot.assessments {
		typeWeight, ok := snapshot.typeWeights[assessment.Type]
		if !ok {
			continue
		}
		questions := snapshot.questions[assessment.ID]
		totalMarks := 0.0
		for _, question := range questions {
			totalMarks += question.Marks
		}
		assessmentWeight := assessmentEffectiveWeight(assessment.Weightage, typeWeight)

		for _, question := range questions {
			weight := questionEffectiveWeight(question.Marks, totalMarks, assessmentWeight)
			if weight == 0 {
				continue
			}
			if len(question.CLOIDs) == 0 {
				s.logger.Warn("question carries weight but maps to no CLO",
					zap.String("question_id", question.ID),
					zap.String("assessment_id", assessment.ID))
				continue
			}

			obtained := snapshot.scores.obtained(question.ID, studentID)
			scoreRatio := ratio(obtained, question.Marks)
			share := weight / float64(len(question.CLOIDs))

			for _, cloID := range question.CLOIDs {
				acc, ok := accumulators[cloID]
				if !ok {
					// Mapping rows may outlive a deleted CLO; ignore strays.
					continue
				}
				acc.totalShare += share
				acc.obtainedShare += share * scoreRatio

				contribution := acc.perType[assessment.Type]
				if contribution == nil {
					contribution = &models.CLOTypeContribution{Type: assessment.Type}
					acc.perType[assessment.Type] = contribution
				}
				contribution.TotalWeight += share
				contribution.ObtainedScore += share * scoreRatio

				if detailed {
					acc.questions = append(acc.questions, models.QuestionContribution{
						QuestionID:      question.ID,
						AssessmentID:    assessment.ID,
						AssessmentType:  assessment.Type,
						TotalMarks:      question.Marks,
						ObtainedMarks:   obtained,
						Percentage:      round2(scoreRatio * 100),
						EffectiveWeight: round2(share),
						WeightedScore:   round2(share * scoreRatio),
						MappedCLOCount:  len(question.CLOIDs),
					})
				}
			}
		}
	}

	table := make([]models.CLOAttainment, 0, len(clos))
	for _, clo := range clos {
		acc := accumulators[clo.ID]
		attainment := models.CLOAttainment{
			CLOID:         clo.ID,
			CLOCode:       clo.Code(),
			Title:         clo.Title,
			TotalMarks:    round2(acc.totalShare),
			ObtainedMarks: round2(acc.obtainedShare),
			AttainmentPct: round2(ratio(acc.obtainedShare, acc.totalShare) * 100),
		}
		if detailed {
			for _, typ := range models.AssessmentTypes() {
				contribution := acc.perType[typ]
				if contribution == nil {
					continue
				}
				attainment.PerType = append(attainment.PerType, models.CLOTypeContribution{
					Type:          typ,
					TotalWeight:   round2(contribution.TotalWeight),
					ObtainedScore: round2(contribution.ObtainedScore),
					AttainmentPct: round2(ratio(contribution.ObtainedScore, contribution.TotalWeight) * 100),
				})
			}
			sort.SliceStable(acc.questions, func(i, j int) bool {
				if acc.questions[i].AssessmentID != acc.questions[j].AssessmentID {
					return acc.questions[i].AssessmentID < acc.questions[j].AssessmentID
				}
				return acc.questions[i].QuestionID < acc.questions[j].QuestionID
			})
			attainment.Questions = acc.questions
		}
		table = append(table, attainment)
	}
	return table
}
