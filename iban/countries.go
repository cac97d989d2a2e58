package iban

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type countryEntry struct {
	code   string
	length int
}

// countryEntries lists every supported country with its total IBAN length.
var countryEntries = []countryEntry{
	{"AL", 28}, {"AD", 24}, {"AT", 20}, {"AZ", 28}, {"BE", 16},
	{"BH", 22}, {"BA", 20}, {"BR", 29}, {"BG", 22}, {"CR", 22},
	{"HR", 21}, {"CY", 28}, {"CZ", 24}, {"DK", 18}, {"DO", 28},
	{"EE", 20}, {"FO", 18}, {"FI", 18}, {"FR", 27}, {"GE", 22},
	{"DE", 22}, {"GI", 23}, {"GR", 27}, {"GL", 18}, {"GT", 28},
	{"HU", 28}, {"IS", 26}, {"IE", 22}, {"IL", 23}, {"IT", 27},
	{"KZ", 20}, {"KW", 30}, {"LV", 21}, {"LB", 28}, {"LI", 21},
	{"LT", 20}, {"LU", 20}, {"MK", 19}, {"MT", 31}, {"MR", 27},
	{"MU", 30}, {"MC", 27}, {"MD", 24}, {"ME", 22}, {"NL", 18},
	{"NO", 15}, {"PK", 24}, {"PS", 29}, {"PL", 28}, {"PT", 25},
	{"RO", 24}, {"SM", 27}, {"SA", 24}, {"RS", 22}, {"SK", 24},
	{"SI", 19}, {"ES", 24}, {"SE", 24}, {"CH", 21}, {"TN", 24},
	{"TR", 26}, {"AE", 23}, {"GB", 22}, {"VG", 24}, {"BJ", 28},
	{"BF", 28}, {"BI", 16}, {"CM", 27}, {"CV", 25}, {"TL", 23},
	{"IR", 26}, {"CI", 28}, {"JO", 30}, {"MG", 27}, {"ML", 28},
	{"MZ", 25}, {"QA", 29}, {"XK", 20}, {"SN", 28}, {"LC", 32},
	{"ST", 25}, {"UA", 29}, {"SC", 31}, {"IQ", 23}, {"BY", 28},
	{"SV", 28}, {"AO", 25}, {"CF", 27}, {"CG", 27}, {"EG", 27},
	{"DJ", 27}, {"DZ", 24}, {"GA", 27}, {"GQ", 27}, {"GW", 25},
	{"MA", 28}, {"NE", 28}, {"TD", 27}, {"TG", 28}, {"KM", 27},
	{"HN", 28}, {"NI", 32},
}

// countryLengths is written once during package initialization and only read
// afterwards, so concurrent lookups need no locking.
var countryLengths = mustBuildCountryTable(countryEntries)

func buildCountryTable(entries []countryEntry) (map[string]int, error) {
	table := make(map[string]int, len(entries))
	for _, e := range entries {
		if len(e.code) != 2 || !isUpperLetter(e.code[0]) || !isUpperLetter(e.code[1]) {
			return nil, fmt.Errorf("iban: country table: invalid code %q", e.code)
		}
		if e.length < MinLength || e.length > MaxLength {
			return nil, fmt.Errorf("iban: country table: %s: length %d out of range [%d, %d]",
				e.code, e.length, MinLength, MaxLength)
		}
		if _, dup := table[e.code]; dup {
			return nil, fmt.Errorf("iban: country table: duplicate code %s", e.code)
		}
		table[e.code] = e.length
	}
	return table, nil
}

func mustBuildCountryTable(entries []countryEntry) map[string]int {
	table, err := buildCountryTable(entries)
	if err != nil {
		panic(err)
	}
	return table
}

// CountryLength returns the total IBAN length for a country code. The code
// is matched case-insensitively after trimming.
func CountryLength(code string) (int, bool) {
	n, ok := countryLengths[strings.ToUpper(strings.TrimSpace(code))]
	return n, ok
}

// IsSupportedCountry reports whether code has an entry in the country table.
func IsSupportedCountry(code string) bool {
	_, ok := CountryLength(code)
	return ok
}

// Countries returns all supported country codes in ascending order.
func Countries() []string {
	return slices.Sorted(maps.Keys(countryLengths))
}

// CountryLengths returns a copy of the country table. Changing the returned
// map has no effect on the package.
func CountryLengths() map[string]int {
	return maps.Clone(countryLengths)
}
