package risk

import (
	"math"
	"sort"
)

// sortRows orders rows by (pincode, date ascending). The sort is stable so
// rows sharing a (pincode, date) key keep their input order, which makes
// velocity reproducible on ties. Unknown dates form a bucket that sorts
// after every real date of the same pincode, so a pincode's first real-date
// row never diffs against a bad-date row.
func sortRows(rows []*Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Pincode != rows[j].Pincode {
			return rows[i].Pincode < rows[j].Pincode
		}
		if rows[i].HasDate != rows[j].HasDate {
			return rows[i].HasDate
		}
		return rows[i].Date.Before(rows[j].Date)
	})
}

// applyVelocity sets each row's velocity to the delta of its total against
// the previous row of the same pincode. The first row of each pincode has no
// prior reference and gets 0. Rows must already be sorted by (pincode, date).
func applyVelocity(rows []*Row) {
	for i, row := range rows {
		if i == 0 || rows[i-1].Pincode != row.Pincode {
			row.Velocity = 0
			continue
		}
		row.Velocity = float64(row.Total - rows[i-1].Total)
	}
}

// applyZScores normalizes each row's total against the whole batch: first
// pass computes the batch mean and sample standard deviation, second pass
// maps every row with those two scalars. A degenerate batch (fewer than two
// rows, or zero variance) yields a z-score of 0 for every row rather than
// letting a division by zero leak NaN into the risk formula.
func applyZScores(rows []*Row) {
	mean, std := totalMeanStdDev(rows)
	if std == 0 {
		for _, row := range rows {
			row.ZScore = 0
		}
		return
	}
	for _, row := range rows {
		row.ZScore = (float64(row.Total) - mean) / std
	}
}

// totalMeanStdDev returns the mean and sample (n-1) standard deviation of
// the rows' totals. Fewer than two rows yields (mean, 0).
func totalMeanStdDev(rows []*Row) (mean, std float64) {
	n := len(rows)
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, row := range rows {
		sum += float64(row.Total)
	}
	mean = sum / float64(n)

	if n < 2 {
		return mean, 0
	}

	var sq float64
	for _, row := range rows {
		d := float64(row.Total) - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(n-1))
}
