package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const theStatePrefix = "THE "

var (
	nonStateCharRegEx = regexp.MustCompile("[^A-Z ]+")
	whitespaceRegEx   = regexp.MustCompile(`\s+`)
)

// accentFolder decomposes accented characters and drops the combining marks
// so that e.g. "Tamil Nādu" folds to "TAMIL NADU" before the ASCII filter
// runs. Chained transformers buffer internally, so each call gets its own.
func accentFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// CleanState canonicalizes a raw state value to an uppercase ASCII token:
// ampersands become "AND", everything outside [A-Z ] is removed, runs of
// whitespace collapse to a single space, and a leading "THE " is stripped.
// The result of CleanState is a fixed point of CleanState.
func CleanState(state string) string {
	if folded, _, err := transform.String(accentFolder(), state); err == nil {
		state = folded
	}

	state = strings.ToUpper(state)
	state = strings.ReplaceAll(state, "&", "AND")
	state = nonStateCharRegEx.ReplaceAllString(state, "")
	state = whitespaceRegEx.ReplaceAllString(state, " ")
	state = strings.TrimSpace(state)
	state = strings.TrimPrefix(state, theStatePrefix)

	return strings.TrimSpace(state)
}
