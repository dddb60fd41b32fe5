package risk

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

const dateColumnLayout = "2006-01-02"

var scoredColumns = []string{
	"total_enrolment", "enrol_velocity", "enrol_zscore",
	"demo_total", "demo_velocity", "demo_zscore",
	"bio_total", "bio_velocity", "bio_zscore",
	"enrol_risk", "demo_risk", "bio_risk",
	"final_risk_score", "risk_level", "risk_reason",
}

// WriteCSV renders the scored table as UTF-8 CSV with a header row and no
// index column. Enrolment passthrough columns appear after the count
// columns, ahead of the derived ones. Unknown dates render as empty cells.
func WriteCSV(w io.Writer, res *Result) error {
	if res == nil {
		return errors.New("result required")
	}

	cw := csv.NewWriter(w)

	header := []string{"date", "state", "pincode", "age_0_5", "age_5_17", "age_18_greater"}
	header = append(header, res.ExtraCols...)
	header = append(header, scoredColumns...)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}

	for _, r := range res.Records {
		row := []string{
			formatDate(r),
			r.State,
			r.Pincode,
			strconv.FormatInt(r.Age0to5, 10),
			strconv.FormatInt(r.Age5to17, 10),
			strconv.FormatInt(r.Age18Plus, 10),
		}
		row = append(row, r.Extras...)
		row = append(row,
			strconv.FormatInt(r.TotalEnrolment, 10),
			formatFloat(r.EnrolVelocity),
			formatFloat(r.EnrolZScore),
			strconv.FormatInt(r.DemoTotal, 10),
			formatFloat(r.DemoVelocity),
			formatFloat(r.DemoZScore),
			strconv.FormatInt(r.BioTotal, 10),
			formatFloat(r.BioVelocity),
			formatFloat(r.BioZScore),
			formatFloat(r.EnrolRisk),
			formatFloat(r.DemoRisk),
			formatFloat(r.BioRisk),
			formatFloat(r.FinalRiskScore),
			r.RiskLevel,
			r.RiskReason,
		)
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush CSV")
}

func formatDate(r *Record) string {
	if !r.HasDate {
		return ""
	}
	return r.Date.Format(dateColumnLayout)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
