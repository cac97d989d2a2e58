package piiutil

import "unicode"

func isSignificant(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func countSignificant(runes []rune) int {
	n := 0
	for _, r := range runes {
		if isSignificant(r) {
			n++
		}
	}
	return n
}

// maskSignificant masks letters/digits in place, leaving the first keepHead and
// the last keepTail significant runes visible. Separators are never touched.
func maskSignificant(runes []rune, keepHead, keepTail int) string {
	total := countSignificant(runes)
	if keepHead < 0 {
		keepHead = 0
	}
	if keepTail < 0 {
		keepTail = 0
	}

	seen := 0
	for i, r := range runes {
		if !isSignificant(r) {
			continue
		}
		if seen >= keepHead && seen < total-keepTail {
			runes[i] = '*'
		}
		seen++
	}
	return string(runes)
}
