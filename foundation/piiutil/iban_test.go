package piiutil

import "testing"

func TestMaskIBAN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "machine form", in: "DE89370400440532013000", want: "DE89**************3000"},
		{name: "human form keeps spaces", in: "DE89 3704 0044 0532 0130 00", want: "DE89 **** **** **** **30 00"},
		{name: "letters in account", in: "GB82WEST1234", want: "GB82****1234"},
		{name: "trim spaces", in: "  GB82WEST1234 ", want: "GB82****1234"},
		{name: "exactly threshold", in: "DE893704", want: "DE******"},
		{name: "short", in: "DE8937", want: "DE****"},
		{name: "country only", in: "XX", want: "XX"},
		{name: "single rune", in: "X", want: "X"},
		{name: "empty", in: "   ", want: ""},
		{name: "only separators", in: "--", want: "--"},
		{name: "lower case kept as is", in: "de89370400440532013000", want: "de89**************3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskIBAN(tt.in); got != tt.want {
				t.Fatalf("MaskIBAN(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMaskSignificant_NegativeKeepsClamp(t *testing.T) {
	got := maskSignificant([]rune("AB-12"), -1, -3)
	if got != "**-**" {
		t.Fatalf("maskSignificant = %q, want %q", got, "**-**")
	}
}
