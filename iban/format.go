package iban

import "strings"

const humanGroupSize = 4

// MachineForm returns the IBAN without separators, e.g.
// "DE89370400440532013000". The check digits are always two characters.
func (v IBAN) MachineForm() string {
	if v.IsZero() {
		return ""
	}
	var b strings.Builder
	b.Grow(len(v.accountIdentifier) + 4)
	b.WriteString(v.countryCode)
	b.Write(twoDigits(v.checkDigits))
	b.WriteString(v.accountIdentifier)
	return b.String()
}

// HumanReadable returns the machine form split into groups of four, e.g.
// "DE89 3704 0044 0532 0130 00". The result is built in a new buffer; v is
// left untouched, so repeated calls return the same string.
func (v IBAN) HumanReadable() string {
	m := v.MachineForm()
	if m == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(m) + len(m)/humanGroupSize)
	for i := 0; i < len(m); i += humanGroupSize {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(m[i:min(i+humanGroupSize, len(m))])
	}
	return b.String()
}

// String implements fmt.Stringer with the machine form.
func (v IBAN) String() string { return v.MachineForm() }

// MarshalText implements encoding.TextMarshaler with the machine form.
func (v IBAN) MarshalText() ([]byte, error) {
	return []byte(v.MachineForm()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Separators are allowed
// (ParseLoose); empty text decodes to the zero IBAN.
func (v *IBAN) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*v = IBAN{}
		return nil
	}
	parsed, err := ParseLoose(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
