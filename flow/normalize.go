package flow

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// cleanCell normalizes a raw spreadsheet cell: BOM strip, NFKC folding,
// control character removal and whitespace trimming. Internal spaces are
// preserved so account identifiers survive intact.
func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	v = norm.NFKC.String(v)
	v = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, v)
	return strings.TrimSpace(v)
}

// matchKey reduces a header name to its matching form: cleaned, lowercased
// and with internal spaces removed. Used for role matching only; cell values
// are never rewritten this way.
func matchKey(header string) string {
	key := strings.ToLower(cleanCell(header))
	return strings.ReplaceAll(key, " ", "")
}
