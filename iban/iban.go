// Package iban parses and validates International Bank Account Numbers
// (ISO 13616) offline.
//
// Parsing and validation are separate steps. Parse only checks the shape of
// the input and splits it into country code, check digits and account
// identifier. Validate then checks the per-country length and the ISO 7064
// MOD 97-10 checksum. A malformed string is a parse error; a well-formed
// string that is not a real IBAN parses fine and fails Validate.
package iban

const (
	// MinLength and MaxLength bound the normalized input accepted by Parse.
	// MinLength is looser than any real IBAN on purpose: country lengths are
	// the validator's job.
	MinLength = 5
	MaxLength = 34

	// FieldName is the field reported in domain invariant errors.
	FieldName = "iban"
)

// IBAN is an immutable, parsed International Bank Account Number.
// The zero value holds no IBAN.
type IBAN struct {
	countryCode       string
	checkDigits       int
	accountIdentifier string
}

// CountryCode returns the two-letter country code, e.g. "DE".
func (v IBAN) CountryCode() string { return v.countryCode }

// CheckDigits returns the check digits as an integer in [0, 99].
func (v IBAN) CheckDigits() int { return v.checkDigits }

// AccountIdentifier returns the national account part (BBAN) without separators.
func (v IBAN) AccountIdentifier() string { return v.accountIdentifier }

// IsZero reports whether v was not produced by a successful parse.
func (v IBAN) IsZero() bool { return v.countryCode == "" }

// Valid is shorthand for Validate(v).
func (v IBAN) Valid() bool { return Validate(v) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isUpperLetter(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLetter(c byte) bool { return isUpperLetter(c) || (c >= 'a' && c <= 'z') }

func toUpperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
