package service

import (
	"math"

	"github.com/obe-automation/attainment-api/internal/models"
)

// ratio divides num by den, treating a zero denominator as zero. Every
// division in the engine goes through this guard so that an unconfigured
// or empty aggregate reads as "nothing attained" rather than NaN.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// round2 rounds to two decimal places using banker's rounding.
func round2(value float64) float64 {
	return math.RoundToEven(value*100) / 100
}

// effectiveTypeWeights returns the breakdown's per-type allocation with
// zero-weight types removed. A type weighted at zero contributes nothing
// anywhere downstream, so the engine never iterates it.
func effectiveTypeWeights(breakdown *models.AssessmentBreakdown) map[models.AssessmentType]float64 {
	weights := make(map[models.AssessmentType]float64)
	for typ, weight := range breakdown.TypeWeights() {
		if weight > 0 {
			weights[typ] = weight
		}
	}
	return weights
}

// assessmentEffectiveWeight scales an assessment's share of its type
// bucket (0-100) into course percentage points.
func assessmentEffectiveWeight(weightage, typeWeight float64) float64 {
	return (weightage / 100) * typeWeight
}

// questionEffectiveWeight splits an assessment's effective weight across
// its questions in proportion to marks.
func questionEffectiveWeight(marks, assessmentTotalMarks, assessmentWeight float64) float64 {
	return ratio(marks, assessmentTotalMarks) * assessmentWeight
}
