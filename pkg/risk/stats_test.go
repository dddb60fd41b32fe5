package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowsWithTotals(totals ...int64) []*Row {
	rows := make([]*Row, 0, len(totals))
	for _, v := range totals {
		rows = append(rows, &Row{Total: v})
	}
	return rows
}

func TestTotalMeanStdDev(t *testing.T) {
	mean, std := totalMeanStdDev(rowsWithTotals(10, 15))
	assert.Equal(t, 12.5, mean)
	assert.InDelta(t, 3.5355339059327378, std, 1e-12)
}

func TestTotalMeanStdDevDegenerate(t *testing.T) {
	mean, std := totalMeanStdDev(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)

	mean, std = totalMeanStdDev(rowsWithTotals(7))
	assert.Equal(t, 7.0, mean)
	assert.Equal(t, 0.0, std)

	_, std = totalMeanStdDev(rowsWithTotals(5, 5, 5))
	assert.Equal(t, 0.0, std)
}

func TestApplyZScoresZeroVariance(t *testing.T) {
	rows := rowsWithTotals(3, 3, 3)
	applyZScores(rows)
	for _, row := range rows {
		assert.Equal(t, 0.0, row.ZScore)
	}
}
