package risk

import (
	"io"
	"time"
)

// Category identifies one of the three upload datasets.
type Category string

const (
	CategoryEnrolment   Category = "enrolment"
	CategoryDemographic Category = "demographic"
	CategoryBiometric   Category = "biometric"
)

const (
	// OutputFileName is the canonical name of the downloadable scored table.
	OutputFileName = "aadhaar_risk_output.csv"

	RiskLevelLow    = "LOW"
	RiskLevelMedium = "MEDIUM"
	RiskLevelHigh   = "HIGH"
)

var requiredColumns = map[Category][]string{
	CategoryEnrolment:   {"age_0_5", "age_5_17", "age_18_greater"},
	CategoryDemographic: {"demo_age_5_17", "demo_age_17_"},
	CategoryBiometric:   {"bio_age_5_17", "bio_age_17_"},
}

// keyColumns are shared by every category and precede the count columns.
var keyColumns = []string{"date", "state", "pincode"}

// Source is one uploaded CSV file.
type Source struct {
	Name   string
	Reader io.Reader
}

// Row is one normalized source row with the derived columns for
// its category.
type Row struct {
	Date     time.Time
	HasDate  bool
	State    string
	Pincode  string
	Counts   []int64
	Extras   []string
	Total    int64
	Velocity float64
	ZScore   float64
}

// Table is one category's fully prepared batch: concatenated, normalized,
// sorted by (pincode, date) and carrying total, velocity and z-score columns.
type Table struct {
	Category Category
	Rows     []*Row

	// ExtraCols names the input columns outside the category's schema,
	// passed through to the output (enrolment only).
	ExtraCols []string
}

// Record is one scored output row: the enrolment row, the columns joined
// in from the demographic and biometric tables, and the risk columns.
type Record struct {
	Date    time.Time `json:"date"`
	HasDate bool      `json:"-"`
	State   string    `json:"state"`
	Pincode string    `json:"pincode"`

	Age0to5   int64 `json:"age_0_5"`
	Age5to17  int64 `json:"age_5_17"`
	Age18Plus int64 `json:"age_18_greater"`

	Extras []string `json:"-"`

	TotalEnrolment int64   `json:"total_enrolment"`
	EnrolVelocity  float64 `json:"enrol_velocity"`
	EnrolZScore    float64 `json:"enrol_zscore"`

	DemoTotal    int64   `json:"demo_total"`
	DemoVelocity float64 `json:"demo_velocity"`
	DemoZScore   float64 `json:"demo_zscore"`

	BioTotal    int64   `json:"bio_total"`
	BioVelocity float64 `json:"bio_velocity"`
	BioZScore   float64 `json:"bio_zscore"`

	EnrolRisk      float64 `json:"enrol_risk"`
	DemoRisk       float64 `json:"demo_risk"`
	BioRisk        float64 `json:"bio_risk"`
	FinalRiskScore float64 `json:"final_risk_score"`
	RiskLevel      string  `json:"risk_level"`
	RiskReason     string  `json:"risk_reason"`
}

// Result is the scored table for one processed batch.
type Result struct {
	Records   []*Record `json:"records"`
	ExtraCols []string  `json:"-"`
}

// Summary aggregates one batch run for display.
type Summary struct {
	Rows         int            `json:"rows" yaml:"rows"`
	HighRisk     int            `json:"high_risk" yaml:"high_risk"`
	Distribution map[string]int `json:"distribution" yaml:"distribution"`
}

// Summarize tabulates row and risk-level counts for a scored batch.
func Summarize(res *Result) *Summary {
	s := &Summary{
		Rows:         len(res.Records),
		Distribution: Distribution(res.Records),
	}
	s.HighRisk = s.Distribution[RiskLevelHigh]
	return s
}
