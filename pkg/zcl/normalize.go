package zcl

import (
	"strings"
	"unicode"
)

// asciiPunctuation is the ASCII punctuation set stripped from space-
// separated XML names during normalisation. Note it includes '_' itself.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isASCIIPunctuation(r rune) bool {
	return strings.ContainsRune(asciiPunctuation, r)
}

// Normalize maps an XML-declared name to the lowercase, underscore-
// separated identifier used as a Schema/Cluster lookup key:
//
//   - if the name contains a space, spaces become underscores, ASCII
//     punctuation is stripped, and the result is lowercased;
//   - otherwise an underscore is inserted before every uppercase letter
//     except the first, and the result is lowercased.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	if strings.ContainsRune(name, ' ') {
		var b strings.Builder
		for _, r := range name {
			switch {
			case r == ' ':
				b.WriteRune('_')
			case isASCIIPunctuation(r):
				continue
			default:
				b.WriteRune(r)
			}
		}
		return strings.ToLower(b.String())
	}

	var b strings.Builder
	for i, r := range name {
		if i != 0 && unicode.IsUpper(r) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
