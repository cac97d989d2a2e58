package iban

import (
	"errors"
	"fmt"

	ferrors "github.com/vortex-fintech/go-iban/foundation/errors"
	"github.com/vortex-fintech/go-iban/foundation/piiutil"
)

// Reason is a stable machine-readable code for a rejected IBAN.
type Reason string

// Parse reasons.
const (
	ReasonTooShort                 Reason = "too_short"
	ReasonTooLong                  Reason = "too_long"
	ReasonInvalidCountryCode       Reason = "invalid_country_code"
	ReasonInvalidCheckDigits       Reason = "invalid_check_digits"
	ReasonInvalidAccountIdentifier Reason = "invalid_account_identifier"
)

// Validation reasons.
const (
	ReasonUnknownCountry   Reason = "unknown_country"
	ReasonLengthMismatch   Reason = "length_mismatch"
	ReasonInvalidCharacter Reason = "invalid_character"
	ReasonChecksumMismatch Reason = "checksum_mismatch"
)

var (
	ErrTooShort                 = errors.New("iban: too short")
	ErrTooLong                  = errors.New("iban: too long")
	ErrInvalidCountryCode       = errors.New("iban: invalid country code")
	ErrInvalidCheckDigits       = errors.New("iban: invalid check digits")
	ErrInvalidAccountIdentifier = errors.New("iban: invalid account identifier")

	ErrUnknownCountry   = errors.New("iban: unknown country")
	ErrLengthMismatch   = errors.New("iban: length does not match country")
	ErrInvalidCharacter = errors.New("iban: invalid character")
	ErrChecksumMismatch = errors.New("iban: checksum mismatch")
)

var reasonErrors = map[Reason]error{
	ReasonTooShort:                 ErrTooShort,
	ReasonTooLong:                  ErrTooLong,
	ReasonInvalidCountryCode:       ErrInvalidCountryCode,
	ReasonInvalidCheckDigits:       ErrInvalidCheckDigits,
	ReasonInvalidAccountIdentifier: ErrInvalidAccountIdentifier,
	ReasonUnknownCountry:           ErrUnknownCountry,
	ReasonLengthMismatch:           ErrLengthMismatch,
	ReasonInvalidCharacter:         ErrInvalidCharacter,
	ReasonChecksumMismatch:         ErrChecksumMismatch,
}

// Err returns the sentinel error for r, or nil for an unknown reason.
func (r Reason) Err() error { return reasonErrors[r] }

// ParseError reports input that cannot be decomposed into an IBAN. Input is
// the string exactly as passed to the parser.
//
// It matches the reason's sentinel with errors.Is and unwraps to a
// foundation/errors InvariantError for transport mapping.
type ParseError struct {
	Input  string
	Reason Reason
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("iban: cannot parse %q: %s", piiutil.MaskIBAN(e.Input), e.Reason)
}

func (e *ParseError) Unwrap() []error {
	return unwrapReason(e.Reason)
}

// ValidationError reports a well-formed IBAN that failed validation.
type ValidationError struct {
	IBAN   IBAN
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("iban: %q is not valid: %s", piiutil.MaskIBAN(e.IBAN.MachineForm()), e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	return unwrapReason(e.Reason)
}

func unwrapReason(r Reason) []error {
	out := make([]error, 0, 2)
	if sentinel := r.Err(); sentinel != nil {
		out = append(out, sentinel)
	}
	return append(out, ferrors.DomainInvariant(FieldName, string(r)))
}

// ReasonOf extracts the reason from a *ParseError or *ValidationError
// anywhere in err's chain.
func ReasonOf(err error) (Reason, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Reason, true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return "", false
}

func parseFailure(raw string, r Reason) error {
	return &ParseError{Input: raw, Reason: r}
}
