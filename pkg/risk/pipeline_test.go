package risk

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPipeline(t *testing.T, enrol, demo, bio string) *Result {
	t.Helper()

	et, err := LoadEnrolment([]Source{{Name: "e.csv", Reader: strings.NewReader(enrol)}})
	require.NoError(t, err)
	dt, err := LoadDemographic([]Source{{Name: "d.csv", Reader: strings.NewReader(demo)}})
	require.NoError(t, err)
	bt, err := LoadBiometric([]Source{{Name: "b.csv", Reader: strings.NewReader(bio)}})
	require.NoError(t, err)

	res, err := MergeAll(et, dt, bt)
	require.NoError(t, err)
	return ComputeRisk(res)
}

// A single-row batch per category is fully neutral: velocity 0 (no prior
// row), z-score 0 (degenerate stats), every risk logistic(0) = 0.5 and the
// composite exactly 50.
func TestPipelineSingleRowBatch(t *testing.T) {
	res := runPipeline(t,
		`date,state,pincode,age_0_5,age_5_17,age_18_greater
2024-01-01,Delhi,110001,5,3,2
`,
		`date,state,pincode,demo_age_5_17,demo_age_17_
2024-01-01,Delhi,110001,4,5
`,
		`date,state,pincode,bio_age_5_17,bio_age_17_
2024-01-01,Delhi,110001,6,7
`)

	require.Len(t, res.Records, 1)
	r := res.Records[0]

	assert.Equal(t, 0.5, r.EnrolRisk)
	assert.Equal(t, 0.5, r.DemoRisk)
	assert.Equal(t, 0.5, r.BioRisk)
	assert.Equal(t, 50.0, r.FinalRiskScore)
	assert.Equal(t, RiskLevelMedium, r.RiskLevel)
	assert.Equal(t, "", r.RiskReason)
}

// Hand-computed composite for a two-row batch, exercised end to end.
func TestPipelineHandComputedScore(t *testing.T) {
	res := runPipeline(t,
		`date,state,pincode,age_0_5,age_5_17,age_18_greater
2024-01-01,Delhi,110001,5,3,2
2024-01-02,Delhi,110001,10,4,1
`,
		`date,state,pincode,demo_age_5_17,demo_age_17_
2024-01-01,Delhi,110001,20,0
2024-01-02,Delhi,110001,10,0
`,
		`date,state,pincode,bio_age_5_17,bio_age_17_
2024-01-01,Delhi,110001,5,0
2024-01-02,Delhi,110001,30,0
`)

	require.Len(t, res.Records, 2)

	sig := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

	// enrol totals [10, 15]: mean 12.5, sample stddev sqrt(12.5)
	// demo totals [20, 10]: mean 15, sample stddev sqrt(50)
	// bio totals [5, 30]: mean 17.5, sample stddev sqrt(312.5)
	z := 2.5 / math.Sqrt(12.5)

	// day one: all velocities 0
	r1 := res.Records[0]
	want1 := (0.40*sig(-z) + 0.35*sig(-z) + 0.25*sig(z)) * 100
	assert.InDelta(t, want1, r1.FinalRiskScore, 1e-9)

	// day two: enrol velocity 5, demo velocity -10, bio velocity 25
	// clipped to 10 before the transform
	r2 := res.Records[1]
	assert.Equal(t, 10.0, r2.BioVelocity)
	want2 := (0.40*sig(10+z) + 0.35*sig(5+z) + 0.25*sig(-10-z)) * 100
	assert.InDelta(t, want2, r2.FinalRiskScore, 1e-9)

	assert.Equal(t, "BIOMETRIC SPIKE, ENROLMENT SPIKE", r2.RiskReason)
	assert.Equal(t, RiskLevelMedium, r2.RiskLevel)
}

// A schema error anywhere aborts the run with no partial output.
func TestPipelineSchemaErrorAborts(t *testing.T) {
	_, err := LoadEnrolment([]Source{{
		Name: "e.csv",
		Reader: strings.NewReader(`date,state,pincode,age_0_5,age_5_17
2024-01-01,Delhi,110001,5,3
`),
	}})

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "age_18_greater")
	assert.Contains(t, se.Error(), "enrolment")
}
