package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Locale resolves the single-separator ambiguity in numeric strings.
// "1.000" is one thousand under the French convention and one under the US
// one; the string alone cannot decide, so the choice is configuration.
type Locale string

const (
	LocaleAuto Locale = "auto" // source-document convention: grouped dots are thousands
	LocaleFR   Locale = "fr"
	LocaleUS   Locale = "us"
)

// ParseLocale maps a config string to a Locale, defaulting to auto.
func ParseLocale(s string) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleFR:
		return LocaleFR
	case LocaleUS:
		return LocaleUS
	default:
		return LocaleAuto
	}
}

// whitespace includes the non-breaking and narrow spaces French documents
// use as thousands separators.
var whitespaceReplacer = strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "", "\u00a0", "", "\u202f", "")

var dotGroupedRe = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseNumeric converts a French- or US-formatted numeric string to a float
// under the auto locale. Returns nil when the input is empty or does not
// parse; it never panics.
func ParseNumeric(raw string) *float64 {
	return ParseNumericLocale(raw, LocaleAuto)
}

// ParseNumericLocale is ParseNumeric with an explicit locale hint.
//
// When both separators are present the one occurring later in the string is
// the decimal point regardless of locale. With a single separator type the
// locale hint decides: comma is decimal under fr/auto and thousands under
// us; a lone dot is decimal unless the digits are grouped in threes
// ("1.000"), which fr/auto read as thousands grouping.
func ParseNumericLocale(raw string, loc Locale) *float64 {
	s := whitespaceReplacer.Replace(raw)
	if s == "" {
		return nil
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if loc == LocaleUS {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			if strings.Count(s, ",") > 1 {
				return nil
			}
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if loc != LocaleUS && dotGroupedRe.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
