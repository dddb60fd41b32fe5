package risk

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type joinKey struct {
	date    time.Time
	hasDate bool
	pincode string
}

// MergeAll left-joins the demographic and biometric derived columns onto the
// enrolment table on exact (date, pincode) equality. Enrolment rows without a
// match keep the row; only the six joined-in numeric columns are zero-filled
// (explicit allowlist, nothing else in the table is touched). A (date,
// pincode) key duplicated inside demo or bio fans the enrolment row out once
// per match; the caller owns that data-quality concern.
func MergeAll(enrol, demo, bio *Table) (*Result, error) {
	if err := checkCategory(enrol, CategoryEnrolment); err != nil {
		return nil, err
	}
	if err := checkCategory(demo, CategoryDemographic); err != nil {
		return nil, err
	}
	if err := checkCategory(bio, CategoryBiometric); err != nil {
		return nil, err
	}

	demoIdx := indexRows(demo.Rows)
	bioIdx := indexRows(bio.Rows)

	res := &Result{
		Records:   make([]*Record, 0, len(enrol.Rows)),
		ExtraCols: enrol.ExtraCols,
	}

	for _, e := range enrol.Rows {
		key := rowKey(e)
		demoMatches := demoIdx[key]
		if len(demoMatches) == 0 {
			demoMatches = []*Row{nil}
		}
		bioMatches := bioIdx[key]
		if len(bioMatches) == 0 {
			bioMatches = []*Row{nil}
		}

		for _, d := range demoMatches {
			for _, b := range bioMatches {
				res.Records = append(res.Records, mergeRecord(e, d, b))
			}
		}
	}

	if len(res.Records) != len(enrol.Rows) {
		log.Warnf("merge fan-out: %d enrolment rows produced %d merged rows (duplicate (date, pincode) keys in demographic or biometric data)",
			len(enrol.Rows), len(res.Records))
	}

	return res, nil
}

func checkCategory(t *Table, want Category) error {
	if t == nil {
		return errors.Errorf("%s table required", want)
	}
	if t.Category != want {
		return errors.Errorf("expected %s table, got %s", want, t.Category)
	}
	return nil
}

func indexRows(rows []*Row) map[joinKey][]*Row {
	idx := make(map[joinKey][]*Row, len(rows))
	for _, row := range rows {
		key := rowKey(row)
		idx[key] = append(idx[key], row)
	}
	return idx
}

func rowKey(row *Row) joinKey {
	k := joinKey{hasDate: row.HasDate, pincode: row.Pincode}
	if row.HasDate {
		k.date = row.Date
	}
	return k
}

func mergeRecord(e, d, b *Row) *Record {
	rec := &Record{
		Date:           e.Date,
		HasDate:        e.HasDate,
		State:          e.State,
		Pincode:        e.Pincode,
		Age0to5:        e.Counts[0],
		Age5to17:       e.Counts[1],
		Age18Plus:      e.Counts[2],
		Extras:         e.Extras,
		TotalEnrolment: e.Total,
		EnrolVelocity:  e.Velocity,
		EnrolZScore:    e.ZScore,
	}

	if d != nil {
		rec.DemoTotal = d.Total
		rec.DemoVelocity = d.Velocity
		rec.DemoZScore = d.ZScore
	}
	if b != nil {
		rec.BioTotal = b.Total
		rec.BioVelocity = b.Velocity
		rec.BioZScore = b.ZScore
	}

	return rec
}
