package validator

import (
	"maps"

	"github.com/vortex-fintech/go-iban/iban"
)

var tagMap = map[string]string{
	"required":     "required",
	"omitempty":    "optional",
	"iban":         "invalid_iban",
	"iban_country": string(iban.ReasonUnknownCountry),
	"max":          "too_long",
	"min":          "too_short",
	"gt":           "too_small",
	"lt":           "too_large",
	"gte":          "too_small_or_equal",
	"lte":          "too_large_or_equal",
	"len":          "invalid_length",
	"oneof":        "invalid_choice",
	"nefield":      "field_should_differ",
	"alpha":        "only_letters_allowed",
	"alphanum":     "only_letters_and_digits_allowed",
	"numeric":      "only_numbers_allowed",
	"uppercase":    "must_be_uppercase",
}

// TagReasons returns a copy of the tag to reason-code table, in the shape
// foundation/errors.FromPlayground expects.
func TagReasons() map[string]string {
	return maps.Clone(tagMap)
}

func mapTagToCode(tag string) string {
	if code, ok := tagMap[tag]; ok {
		return code
	}
	return "invalid"
}
