package risk

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/IdealAdarsh9/Aadhaar-risk-engine/pkg/normalize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SchemaError reports an input batch that cannot be processed: a required
// column is missing, or a count cell is not numeric. Schema errors abort the
// whole batch; no partial table is ever returned.
type SchemaError struct {
	Category Category
	Source   string
	Column   string
	Line     int
	Reason   string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("%s: schema error in column %q", e.Category, e.Column)
	if e.Source != "" {
		msg = fmt.Sprintf("%s (file: %s)", msg, e.Source)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s, line %d", msg, e.Line)
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

// LoadEnrolment prepares the enrolment batch from one or more CSV sources.
// Extra input columns are unioned across files and carried through to the
// scored output; rows from a file that lacks another file's extra column get
// empty cells for it.
func LoadEnrolment(srcs []Source) (*Table, error) {
	return load(CategoryEnrolment, srcs, true)
}

// LoadDemographic prepares the demographic update batch.
func LoadDemographic(srcs []Source) (*Table, error) {
	return load(CategoryDemographic, srcs, false)
}

// LoadBiometric prepares the biometric update batch.
func LoadBiometric(srcs []Source) (*Table, error) {
	return load(CategoryBiometric, srcs, false)
}

func load(cat Category, srcs []Source, keepExtras bool) (*Table, error) {
	if len(srcs) == 0 {
		return nil, errors.Errorf("%s: at least one input file required", cat)
	}

	t := &Table{Category: cat}
	for _, src := range srcs {
		if err := readSource(t, src, keepExtras); err != nil {
			return nil, err
		}
	}

	// extras are unioned across files, so rows read before a later file
	// introduced a column are padded with empty cells
	for _, row := range t.Rows {
		for len(row.Extras) < len(t.ExtraCols) {
			row.Extras = append(row.Extras, "")
		}
	}

	log.Debugf("%s: loaded %d rows from %d file(s)", cat, len(t.Rows), len(srcs))

	sortRows(t.Rows)
	applyVelocity(t.Rows)
	applyZScores(t.Rows)

	return t, nil
}

// readSource appends one CSV file's rows to the table, growing the
// extra-column union with any columns this file introduces.
func readSource(t *Table, src Source, keepExtras bool) error {
	r := csv.NewReader(src.Reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return errors.Wrapf(err, "%s: failed to read header (file: %s)", t.Category, src.Name)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	counts := requiredColumns[t.Category]
	for _, col := range append(append([]string{}, keyColumns...), counts...) {
		if _, ok := index[col]; !ok {
			return &SchemaError{
				Category: t.Category,
				Source:   src.Name,
				Column:   col,
				Reason:   "required column missing",
			}
		}
	}

	if keepExtras {
		known := make(map[string]bool)
		for _, col := range append(append([]string{}, keyColumns...), counts...) {
			known[col] = true
		}
		have := make(map[string]bool, len(t.ExtraCols))
		for _, col := range t.ExtraCols {
			have[col] = true
		}
		for _, col := range header {
			col = strings.TrimSpace(col)
			if !known[col] && !have[col] {
				t.ExtraCols = append(t.ExtraCols, col)
				have[col] = true
			}
		}
	}

	cell := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for line := 2; ; line++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return errors.Wrapf(err, "%s: failed to read row (file: %s, line: %d)", t.Category, src.Name, line)
		}

		row := &Row{
			State:   normalize.CleanState(cell(rec, "state")),
			Pincode: cell(rec, "pincode"),
			Counts:  make([]int64, len(counts)),
		}
		row.Date, row.HasDate = normalize.ParseDate(cell(rec, "date"))

		for i, col := range counts {
			v := cell(rec, col)
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return &SchemaError{
					Category: t.Category,
					Source:   src.Name,
					Column:   col,
					Line:     line,
					Reason:   fmt.Sprintf("non-numeric count value %q", v),
				}
			}
			row.Counts[i] = n
			row.Total += n
		}

		if keepExtras {
			row.Extras = make([]string, len(t.ExtraCols))
			for i, col := range t.ExtraCols {
				row.Extras[i] = cell(rec, col)
			}
		}

		t.Rows = append(t.Rows, row)
	}

	return nil
}
