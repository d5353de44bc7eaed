package utils

import (
	"strings"
	"unicode"
)

// diacriticFold maps common Latin letters with diacritics to their closest
// ASCII equivalent.
var diacriticFold = map[rune]rune{
	'À': 'A', 'Á': 'A', 'Â': 'A', 'Ã': 'A', 'Ä': 'A', 'Å': 'A',
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'È': 'E', 'É': 'E', 'Ê': 'E', 'Ë': 'E',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'Ì': 'I', 'Í': 'I', 'Î': 'I', 'Ï': 'I',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'Ò': 'O', 'Ó': 'O', 'Ô': 'O', 'Õ': 'O', 'Ö': 'O',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'Ù': 'U', 'Ú': 'U', 'Û': 'U', 'Ü': 'U',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'Ç': 'C', 'ç': 'c',
	'Ñ': 'N', 'ñ': 'n',
	'Ý': 'Y', 'ý': 'y', 'ÿ': 'y',
}

// SanitizeFilename converts a filename to printable ASCII safe for use in a
// quoted HTTP header value. Latin characters with diacritics fold to their
// ASCII equivalents; double quotes, backslashes, and everything else without
// an equivalent become '-'.
func SanitizeFilename(filename string) string {
	if filename == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(filename))

	for _, r := range filename {
		switch {
		case r == '"' || r == '\\':
			result.WriteRune('-')
		case r < 128 && unicode.IsPrint(r):
			result.WriteRune(r)
		default:
			if folded, ok := diacriticFold[r]; ok {
				result.WriteRune(folded)
			} else {
				result.WriteRune('-')
			}
		}
	}

	return result.String()
}

// ContentDispositionAttachment builds an attachment Content-Disposition
// value carrying the sanitized filename. An empty filename yields a bare
// "attachment" with no filename parameter.
func ContentDispositionAttachment(filename string) string {
	name := SanitizeFilename(filename)
	if name == "" {
		return "attachment"
	}
	return `attachment; filename="` + name + `"`
}
