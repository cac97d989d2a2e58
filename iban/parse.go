package iban

import (
	"strings"
	"unicode"
)

// Parse decomposes raw into an IBAN. Leading and trailing whitespace is
// trimmed and ASCII letters are uppercased; nothing else is normalized, so
// embedded separators are rejected (see ParseLoose for human input).
//
// The returned error is a *ParseError. Parse does not validate the checksum
// or the country length; call Validate for that.
func Parse(raw string) (IBAN, error) {
	return parse(raw, strings.TrimSpace(raw))
}

// ParseLoose is Parse for human-entered input: all whitespace and hyphens
// are removed first, so "DE89 3704 0044 0532 0130 00" is accepted.
func ParseLoose(raw string) (IBAN, error) {
	return parse(raw, stripSeparators(raw))
}

// MustParse is like ParseLoose but panics on error. Intended for tests and
// package-level values.
func MustParse(raw string) IBAN {
	v, err := ParseLoose(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func parse(raw, trimmed string) (IBAN, error) {
	// Only ASCII is uppercased: a Unicode case mapping could turn a foreign
	// rune into an ASCII letter and change the byte length.
	s := []byte(trimmed)
	for i := range s {
		s[i] = toUpperASCII(s[i])
	}

	switch {
	case len(s) > MaxLength:
		return IBAN{}, parseFailure(raw, ReasonTooLong)
	case len(s) < MinLength:
		return IBAN{}, parseFailure(raw, ReasonTooShort)
	}

	if !isUpperLetter(s[0]) || !isUpperLetter(s[1]) {
		return IBAN{}, parseFailure(raw, ReasonInvalidCountryCode)
	}
	if !isDigit(s[2]) || !isDigit(s[3]) {
		return IBAN{}, parseFailure(raw, ReasonInvalidCheckDigits)
	}
	for _, c := range s[4:] {
		if !isUpperLetter(c) && !isDigit(c) {
			return IBAN{}, parseFailure(raw, ReasonInvalidAccountIdentifier)
		}
	}

	return IBAN{
		countryCode:       string(s[:2]),
		checkDigits:       int(s[2]-'0')*10 + int(s[3]-'0'),
		accountIdentifier: string(s[4:]),
	}, nil
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
