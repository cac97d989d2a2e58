package iban

import (
	"fmt"
	"strconv"
	"strings"
)

// The numeric form of an IBAN can reach ~70 digits. It is reduced mod 97 in
// chunks: 9 digits first, then the 2-digit remainder followed by the next 7
// digits, so every intermediate value has at most 9 digits.
const (
	firstChunkDigits = 9
	nextChunkDigits  = 7
)

// Validate reports whether v is a valid IBAN: its country is known, its
// length matches that country, and the MOD 97-10 checksum is 1.
// It never modifies v.
func Validate(v IBAN) bool {
	return Verify(v) == nil
}

// Verify is Validate with a diagnostic: it returns nil for a valid IBAN and a
// *ValidationError naming the failed check otherwise.
func Verify(v IBAN) error {
	expected, ok := countryLengths[v.countryCode]
	if !ok {
		return &ValidationError{IBAN: v, Reason: ReasonUnknownCountry}
	}

	check := rearranged(v.countryCode, v.checkDigits, v.accountIdentifier)
	if len(check) != expected {
		return &ValidationError{IBAN: v, Reason: ReasonLengthMismatch}
	}

	digits, ok := toNumeric(check)
	if !ok {
		return &ValidationError{IBAN: v, Reason: ReasonInvalidCharacter}
	}
	if rem, ok := mod97(digits); !ok || rem != 1 {
		return &ValidationError{IBAN: v, Reason: ReasonChecksumMismatch}
	}
	return nil
}

// ComputeCheckDigits returns the check digits that make
// countryCode + digits + accountIdentifier a valid IBAN. Input is
// case-insensitive. The country must be known and the resulting length must
// match it.
func ComputeCheckDigits(countryCode, accountIdentifier string) (int, error) {
	cc := strings.ToUpper(strings.TrimSpace(countryCode))
	acct := strings.ToUpper(accountIdentifier)

	expected, ok := countryLengths[cc]
	if !ok {
		return 0, fmt.Errorf("compute check digits for %q: %w", cc, ErrUnknownCountry)
	}
	if len(acct)+4 != expected {
		return 0, fmt.Errorf("compute check digits for %s: account length %d, want %d: %w",
			cc, len(acct), expected-4, ErrLengthMismatch)
	}

	digits, ok := toNumeric(rearranged(cc, 0, acct))
	if !ok {
		return 0, fmt.Errorf("compute check digits for %s: %w", cc, ErrInvalidCharacter)
	}
	rem, ok := mod97(digits)
	if !ok {
		return 0, fmt.Errorf("compute check digits for %s: %w", cc, ErrInvalidCharacter)
	}
	return 98 - rem, nil
}

// rearranged moves the country code and check digits behind the account
// identifier, as ISO 13616 requires before the checksum.
func rearranged(countryCode string, checkDigits int, accountIdentifier string) string {
	var b strings.Builder
	b.Grow(len(accountIdentifier) + 4)
	b.WriteString(accountIdentifier)
	b.WriteString(countryCode)
	b.Write(twoDigits(checkDigits))
	return b.String()
}

// toNumeric substitutes every letter with its two-digit value (A=10 ... Z=35,
// the alphabet position plus 9). Digits pass through. Any other byte makes
// the string invalid.
func toNumeric(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isDigit(c):
			b.WriteByte(c)
		case isLetter(c):
			b.WriteString(strconv.Itoa(int(c&31) + 9))
		default:
			return "", false
		}
	}
	return b.String(), true
}

// mod97 reduces a decimal digit string modulo 97 without big integers.
func mod97(digits string) (int, bool) {
	if digits == "" {
		return 0, false
	}

	var (
		rem    uint64
		prefix []byte
		step   = firstChunkDigits
	)
	for pos := 0; pos < len(digits); {
		end := min(pos+step, len(digits))
		n, err := strconv.ParseUint(string(prefix)+digits[pos:end], 10, 64)
		if err != nil {
			return 0, false
		}
		rem = n % 97
		prefix = twoDigits(int(rem))
		pos = end
		step = nextChunkDigits
	}
	return int(rem), true
}

// twoDigits zero-pads n in [0, 99] to exactly two ASCII digits.
func twoDigits(n int) []byte {
	return []byte{byte('0' + n/10), byte('0' + n%10)}
}
