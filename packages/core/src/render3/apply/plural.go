package apply

import (
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

var pluralMapping = map[plural.Form]string{
	plural.Zero:  "zero",
	plural.One:   "one",
	plural.Two:   "two",
	plural.Few:   "few",
	plural.Many:  "many",
	plural.Other: "other",
}

// GetPluralCase returns the CLDR plural category of value in locale. Only the
// leading integer of value is considered; anything else is "other".
func GetPluralCase(value string, locale language.Tag) string {
	n, ok := leadingInt(value)
	if !ok {
		return "other"
	}
	if n < 0 {
		n = -n
	}
	form := plural.Cardinal.MatchPlural(locale, n, 0, 0, 0, 0)
	if result, ok := pluralMapping[form]; ok {
		return result
	}
	return "other"
}

func leadingInt(value string) (int, bool) {
	s := strings.TrimSpace(value)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
