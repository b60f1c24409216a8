// Package normalize provides canonical forms for user-supplied text.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Name canonicalizes a person, series, or title string before it is
// stored or used as a lookup key. The composed Unicode form (NFC) makes
// visually identical names byte-identical, control characters are
// dropped, and runs of whitespace collapse to single spaces. Names that
// differ only in these ways resolve to the same catalog row.
func Name(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
