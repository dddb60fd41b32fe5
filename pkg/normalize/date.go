package normalize

import (
	"strings"
	"time"
)

// Accepted date layouts, tried in order. ISO dates are matched first so that
// an unambiguous "2006-01-02" is never misread; every remaining layout uses
// the day-before-month convention. Anything else is an unknown date.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
	"02.01.2006",
	"02-Jan-2006",
	"2 January 2006",
}

// ParseDate parses a raw date value using the day-first policy above.
// Unparseable input yields the zero time and false rather than an error,
// so a bad date never fails the batch.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
