package risk

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	res := &Result{
		Records: []*Record{
			{
				Date:           time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				HasDate:        true,
				State:          "DELHI",
				Pincode:        "110001",
				Age0to5:        1,
				Age5to17:       2,
				Age18Plus:      3,
				TotalEnrolment: 6,
				EnrolVelocity:  1.5,
				DemoTotal:      4,
				BioTotal:       5,
				EnrolRisk:      0.5,
				DemoRisk:       0.5,
				BioRisk:        0.5,
				FinalRiskScore: 50,
				RiskLevel:      RiskLevelMedium,
				RiskReason:     "",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	wantHeader := []string{
		"date", "state", "pincode", "age_0_5", "age_5_17", "age_18_greater",
		"total_enrolment", "enrol_velocity", "enrol_zscore",
		"demo_total", "demo_velocity", "demo_zscore",
		"bio_total", "bio_velocity", "bio_zscore",
		"enrol_risk", "demo_risk", "bio_risk",
		"final_risk_score", "risk_level", "risk_reason",
	}
	assert.Equal(t, wantHeader, rows[0])

	assert.Equal(t, "2024-01-02", rows[1][0])
	assert.Equal(t, "DELHI", rows[1][1])
	assert.Equal(t, "110001", rows[1][2])
	assert.Equal(t, "6", rows[1][6])
	assert.Equal(t, "1.5", rows[1][7])
	assert.Equal(t, "50", rows[1][18])
	assert.Equal(t, "MEDIUM", rows[1][19])
}

func TestWriteCSVExtraColumns(t *testing.T) {
	res := &Result{
		ExtraCols: []string{"district"},
		Records: []*Record{
			{
				HasDate:   false,
				State:     "DELHI",
				Pincode:   "110001",
				Extras:    []string{"Central"},
				RiskLevel: RiskLevelLow,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "district", rows[0][6])
	assert.Equal(t, "Central", rows[1][6])

	// unknown date renders empty, not a sentinel value
	assert.Equal(t, "", rows[1][0])
}

func TestWriteCSVNoIndexColumn(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &Result{}))

	line, _, _ := strings.Cut(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(line, "date,"))
}

func TestWriteCSVNilResult(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCSV(&buf, nil))
}
