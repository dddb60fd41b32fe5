package risk

import (
	"math"
	"strings"
)

const (
	// Velocity and z-score inputs are clamped to this range before the
	// logistic transform so extreme batch statistics cannot saturate it.
	clipMin = -10.0
	clipMax = 10.0

	weightBio   = 0.40
	weightEnrol = 0.35
	weightDemo  = 0.25

	highRiskFloor   = 80.0
	mediumRiskFloor = 50.0

	spikeThreshold = 0.7

	tagBioSpike   = "BIOMETRIC SPIKE"
	tagEnrolSpike = "ENROLMENT SPIKE"
	tagDemoSpike  = "DEMOGRAPHIC SPIKE"
)

// ComputeRisk scores every merged record in place and returns the result.
// The six velocity and z-score columns are stored back clipped, so the
// output table reflects the values the formula actually consumed.
func ComputeRisk(res *Result) *Result {
	for _, r := range res.Records {
		r.EnrolVelocity = clip(r.EnrolVelocity)
		r.DemoVelocity = clip(r.DemoVelocity)
		r.BioVelocity = clip(r.BioVelocity)
		r.EnrolZScore = clip(r.EnrolZScore)
		r.DemoZScore = clip(r.DemoZScore)
		r.BioZScore = clip(r.BioZScore)

		r.EnrolRisk = logistic(r.EnrolVelocity + r.EnrolZScore)
		r.DemoRisk = logistic(r.DemoVelocity + r.DemoZScore)
		r.BioRisk = logistic(r.BioVelocity + r.BioZScore)

		r.FinalRiskScore = (weightBio*r.BioRisk + weightEnrol*r.EnrolRisk + weightDemo*r.DemoRisk) * 100
		r.RiskLevel = riskLevel(r.FinalRiskScore)
		r.RiskReason = RiskReason(r.BioRisk, r.EnrolRisk, r.DemoRisk)
	}
	return res
}

func clip(v float64) float64 {
	if v < clipMin {
		return clipMin
	}
	if v > clipMax {
		return clipMax
	}
	return v
}

// logistic is the standard sigmoid 1 / (1 + e^-x). Inputs are clipped to
// |x| <= 20 upstream, well inside the numerically stable range.
func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func riskLevel(score float64) string {
	switch {
	case score >= highRiskFloor:
		return RiskLevelHigh
	case score >= mediumRiskFloor:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// RiskReason builds the reason tag string from the three category risks.
// Tags are appended in fixed order (biometric, enrolment, demographic) for
// every category whose risk exceeds the spike threshold, independent of
// numeric magnitude. No spike yields the empty string.
func RiskReason(bioRisk, enrolRisk, demoRisk float64) string {
	var tags []string
	if bioRisk > spikeThreshold {
		tags = append(tags, tagBioSpike)
	}
	if enrolRisk > spikeThreshold {
		tags = append(tags, tagEnrolSpike)
	}
	if demoRisk > spikeThreshold {
		tags = append(tags, tagDemoSpike)
	}
	return strings.Join(tags, ", ")
}
