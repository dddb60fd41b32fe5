package risk

import "sort"

// HighRiskViewLimit caps the high-risk summary view.
const HighRiskViewLimit = 50

// TopHighRisk returns the HIGH records ordered by final score descending,
// capped at limit (<= 0 means no cap). The sort is stable so equal scores
// keep their table order.
func TopHighRisk(records []*Record, limit int) []*Record {
	out := make([]*Record, 0)
	for _, r := range records {
		if r.RiskLevel == RiskLevelHigh {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalRiskScore > out[j].FinalRiskScore
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Distribution tabulates record counts per risk level.
func Distribution(records []*Record) map[string]int {
	dist := map[string]int{
		RiskLevelLow:    0,
		RiskLevelMedium: 0,
		RiskLevelHigh:   0,
	}
	for _, r := range records {
		dist[r.RiskLevel]++
	}
	return dist
}

// FilterPincode returns the records whose pincode matches pin exactly.
func FilterPincode(records []*Record, pin string) []*Record {
	out := make([]*Record, 0)
	for _, r := range records {
		if r.Pincode == pin {
			out = append(out, r)
		}
	}
	return out
}
