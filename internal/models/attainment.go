package models

// QuestionContribution is one question's share of a student's outcome
// attainment after scaling through every parent weight level.
type QuestionContribution struct {
	QuestionID      string         `json:"question_id"`
	AssessmentID    string         `json:"assessment_id"`
	AssessmentType  AssessmentType `json:"assessment_type"`
	TotalMarks      float64        `json:"total_marks"`
	ObtainedMarks   float64        `json:"obtained_marks"`
	Percentage      float64        `json:"percentage"`
	EffectiveWeight float64        `json:"effective_weight"`
	WeightedScore   float64        `json:"weighted_score"`
	MappedCLOCount  int            `json:"mapped_clo_count"`
}

// CLOTypeContribution breaks a CLO's weighted totals down by assessment
// type, for faculty drill-down views.
type CLOTypeContribution struct {
	Type          AssessmentType `json:"type"`
	TotalWeight   float64        `json:"total_weight"`
	ObtainedScore float64        `json:"obtained_score"`
	AttainmentPct float64        `json:"attainment_pct"`
}

// CLOAttainment is one student's attainment of one CLO.
type CLOAttainment struct {
	CLOID         string                 `json:"clo_id"`
	CLOCode       string                 `json:"clo_code"`
	Title         string                 `json:"title"`
	TotalMarks    float64                `json:"total_marks"`
	ObtainedMarks float64                `json:"obtained_marks"`
	AttainmentPct float64                `json:"attainment_pct"`
	PerType       []CLOTypeContribution  `json:"per_type,omitempty"`
	Questions     []QuestionContribution `json:"questions,omitempty"`
}

// StudentCLOAttainment is the full outcome-based view for one student
// in one section.
type StudentCLOAttainment struct {
	SectionID string          `json:"section_id"`
	StudentID string          `json:"student_id"`
	CLOs      []CLOAttainment `json:"clos"`
}

// CLOAverage is the cohort mean attainment for one CLO.
type CLOAverage struct {
	CLOID      string  `json:"clo_id"`
	CLOCode    string  `json:"clo_code"`
	Title      string  `json:"title"`
	AveragePct float64 `json:"average_pct"`
}

// StudentCLOSummary carries one student's per-CLO percentages inside a
// cohort report.
type StudentCLOSummary struct {
	StudentID   string          `json:"student_id"`
	StudentName string          `json:"student_name"`
	Attainments []CLOAttainment `json:"attainments"`
}

// CohortCLOAttainment is the faculty view: per-CLO cohort averages plus
// the per-student rows they aggregate.
type CohortCLOAttainment struct {
	SectionID     string              `json:"section_id"`
	PerCLOAverage []CLOAverage        `json:"per_clo_average"`
	Students      []StudentCLOSummary `json:"students"`
}

// PLOCourseContribution is one CLO-to-PLO mapping's share of a PLO
// rollup, scoped to the course the mapping belongs to.
type PLOCourseContribution struct {
	CourseID         string  `json:"course_id"`
	SectionID        string  `json:"section_id"`
	CLOID            string  `json:"clo_id"`
	CLOCode          string  `json:"clo_code"`
	MappingWeight    float64 `json:"mapping_weight"`
	CLOAttainmentPct float64 `json:"clo_attainment_pct"`
}

// PLOAttainment is a student's attainment of one PLO: the weighted
// average of mapped CLO attainments, normalised by the mapping weights
// actually present.
type PLOAttainment struct {
	PLOID         string                  `json:"plo_id"`
	PLOCode       string                  `json:"plo_code"`
	Heading       string                  `json:"heading"`
	AttainmentPct float64                 `json:"attainment_pct"`
	WeightSum     float64                 `json:"weight_sum"`
	Contributions []PLOCourseContribution `json:"contributions,omitempty"`
}

// ProgramAttainment lists a student's attainment across every PLO of a
// program.
type ProgramAttainment struct {
	ProgramID string          `json:"program_id"`
	StudentID string          `json:"student_id"`
	PLOs      []PLOAttainment `json:"plos"`
}

// QuestionResult is the per-question row of the traditional grade view.
type QuestionResult struct {
	QuestionID    string  `json:"question_id"`
	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"`
	Percentage    float64 `json:"percentage"`
}

// AssessmentRollup aggregates one assessment for one student.
type AssessmentRollup struct {
	AssessmentID    string           `json:"assessment_id"`
	Title           string           `json:"title"`
	Type            AssessmentType   `json:"type"`
	Weightage       float64          `json:"weightage"`
	EffectiveWeight float64          `json:"effective_weight"`
	TotalMarks      float64          `json:"total_marks"`
	ObtainedMarks   float64          `json:"obtained_marks"`
	Percentage      float64          `json:"percentage"`
	Contribution    float64          `json:"contribution"`
	Questions       []QuestionResult `json:"questions,omitempty"`
}

// TypeRollup aggregates one assessment type for one student. Completion
// tracks how much of the type's allocation has assessments configured;
// Contribution tracks what the student actually earned of it. The two
// are deliberately distinct.
type TypeRollup struct {
	Type            AssessmentType     `json:"type"`
	AllocatedWeight float64            `json:"allocated_weight"`
	CompletionPct   float64            `json:"completion_pct"`
	EarnedPct       float64            `json:"earned_pct"`
	Contribution    float64            `json:"contribution"`
	TotalMarks      float64            `json:"total_marks"`
	ObtainedMarks   float64            `json:"obtained_marks"`
	Assessments     []AssessmentRollup `json:"assessments,omitempty"`
}

// FinalResult is the traditional (non-outcome) grade view for one
// student in one section.
type FinalResult struct {
	SectionID        string       `json:"section_id"`
	StudentID        string       `json:"student_id"`
	TotalWeight      float64      `json:"total_weight"`
	CourseCompletion float64      `json:"course_completion"`
	FinalScore       float64      `json:"final_score"`
	Types            []TypeRollup `json:"types"`
}

// PerformanceStats summarises a cohort's score distribution.
type PerformanceStats struct {
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
}

// TypeOverview is the section-overview row for one assessment type.
type TypeOverview struct {
	Type            AssessmentType   `json:"type"`
	AssessmentCount int              `json:"assessment_count"`
	AllocatedWeight float64          `json:"allocated_weight"`
	TotalMarks      float64          `json:"total_marks"`
	CompletionPct   float64          `json:"completion_pct"`
	Stats           PerformanceStats `json:"stats"`
}

// StudentTypeScore is one student's raw and weight-adjusted score in
// one assessment type.
type StudentTypeScore struct {
	Type          AssessmentType `json:"type"`
	ObtainedScore float64        `json:"obtained_score"`
	AdjustedScore float64        `json:"adjusted_score"`
}

// StudentOverviewRow is one student's line in the faculty section
// overview.
type StudentOverviewRow struct {
	StudentID           string             `json:"student_id"`
	StudentName         string             `json:"student_name"`
	TotalScore          float64            `json:"total_score"`
	Percentage          float64            `json:"percentage"`
	AdjustedCourseScore float64            `json:"adjusted_course_score"`
	TypeScores          []StudentTypeScore `json:"type_scores"`
}

// SectionOverview is the top drill-down level of the faculty report.
type SectionOverview struct {
	SectionID          string               `json:"section_id"`
	CourseCompletion   float64              `json:"course_completion"`
	StudentPerformance PerformanceStats     `json:"student_performance"`
	Types              []TypeOverview       `json:"types"`
	Students           []StudentOverviewRow `json:"students,omitempty"`
}

// AssessmentStat summarises one assessment across a cohort.
type AssessmentStat struct {
	AssessmentID       string           `json:"assessment_id"`
	Title              string           `json:"title"`
	TotalMarks         float64          `json:"total_marks"`
	Weightage          float64          `json:"weightage"`
	AdjustedTotalMarks float64          `json:"adjusted_total_marks"`
	Stats              PerformanceStats `json:"stats"`
}

// StudentAssessmentScore is one student's result on one assessment
// inside a type-detail report.
type StudentAssessmentScore struct {
	AssessmentID  string  `json:"assessment_id"`
	Title         string  `json:"title"`
	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"`
	Percentage    float64 `json:"percentage"`
	AdjustedScore float64 `json:"adjusted_score"`
}

// StudentTypeRow is one student's line in the type-detail report.
type StudentTypeRow struct {
	StudentID   string                   `json:"student_id"`
	StudentName string                   `json:"student_name"`
	TypeScore   float64                  `json:"type_score"`
	Percentage  float64                  `json:"percentage"`
	Assessments []StudentAssessmentScore `json:"assessments"`
}

// TypeDetails is the middle drill-down level: assessments within one
// assessment type.
type TypeDetails struct {
	SectionID       string           `json:"section_id"`
	Type            AssessmentType   `json:"type"`
	AllocatedWeight float64          `json:"allocated_weight"`
	CompletionPct   float64          `json:"completion_pct"`
	Assessments     []AssessmentStat `json:"assessments"`
	Students        []StudentTypeRow `json:"students,omitempty"`
}

// QuestionStat summarises one question across a cohort.
type QuestionStat struct {
	QuestionID string           `json:"question_id"`
	TotalMarks float64          `json:"total_marks"`
	Stats      PerformanceStats `json:"stats"`
}

// StudentQuestionRow is one student's line in the assessment-detail
// report.
type StudentQuestionRow struct {
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Obtained    float64          `json:"obtained"`
	Percentage  float64          `json:"percentage"`
	Questions   []QuestionResult `json:"questions"`
}

// AssessmentDetails is the bottom drill-down level: questions within
// one assessment.
type AssessmentDetails struct {
	SectionID    string               `json:"section_id"`
	AssessmentID string               `json:"assessment_id"`
	Title        string               `json:"title"`
	Type         AssessmentType       `json:"type"`
	TotalMarks   float64              `json:"total_marks"`
	Questions    []QuestionStat       `json:"questions"`
	Students     []StudentQuestionRow `json:"students,omitempty"`
}
