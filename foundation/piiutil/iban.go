package piiutil

import "strings"

const (
	ibanVisibleHead = 4
	ibanVisibleTail = 4

	// Below this many significant characters only the country code is left visible.
	ibanShortThreshold = ibanVisibleHead + ibanVisibleTail
	ibanShortHead      = 2
)

// MaskIBAN masks an IBAN (or anything that looks like one) for logs and error
// messages. Country code, check digits and the last four account characters
// stay visible; spaces and other separators are preserved.
//
// Examples:
//
//	"DE89370400440532013000"       -> "DE89**************3000"
//	"DE89 3704 0044 0532 0130 00"  -> "DE89 **** **** **** **30 00"
//	"GB82WEST1234"                 -> "GB82****1234"
//	"DE8937"                       -> "DE****"
//	"XX"                           -> "XX"
func MaskIBAN(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	runes := []rune(s)
	if countSignificant(runes) <= ibanShortThreshold {
		return maskSignificant(runes, ibanShortHead, 0)
	}
	return maskSignificant(runes, ibanVisibleHead, ibanVisibleTail)
}
