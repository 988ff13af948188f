package i18n

import (
	"regexp"
	"strings"
)

// Marker delimits bindings, placeholders and sub-template boundaries in a message.
const Marker = "\uFFFD"

var (
	bindingRegexp     = regexp.MustCompile(`\x{FFFD}(\d+):?\d*\x{FFFD}`)
	icuRegexp         = regexp.MustCompile(`\{\s*\x{FFFD}\d+:?\d*\x{FFFD}\s*,\s*\S{6}\s*,[\s\S]*\}`)
	nestedIcuRegexp   = regexp.MustCompile(`\x{FFFD}(\d+)\x{FFFD}`)
	icuBlockRegexp    = regexp.MustCompile(`^\s*(\x{FFFD}\d+:?\d*\x{FFFD})\s*,\s*(select|plural)\s*,`)
	icuHeaderRegexp   = regexp.MustCompile(`^\s*\x{FFFD}[^\x{FFFD}]*\x{FFFD}\s*,\s*(select|plural)\s*,`)
	subTemplateRegexp = regexp.MustCompile(`\x{FFFD}/?\*(\d+:\d+)\x{FFFD}`)
	phRegexp          = regexp.MustCompile(`\x{FFFD}(/?[#*]\d+):?\d*\x{FFFD}`)
	pluralKeyRegexp   = regexp.MustCompile(`\s*(?:=)?(\w+)\s*`)
)

// Angular Dart introduced &ngsp; as a placeholder for non-removable space, see:
// https://github.com/dart-lang/angular/blob/0bb611387d29d65b5af7f9d2515ab571fd3fbee4/_tests/test/compiler/preserve_whitespace_test.dart#L25-L32
// In Angular Dart &ngsp; is converted to the 0xE500 PUA (Private Use Areas) unicode character
// and later on replaced by a space. Translations might contain this character too.
const ngsp = "\uE500"

func replaceNgsp(value string) string {
	return strings.ReplaceAll(value, ngsp, " ")
}

// splitCaptures splits s around every match of re, keeping the first capture
// group: even entries are the text between matches, odd entries the captures.
func splitCaptures(re *regexp.Regexp, s string) []string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	parts := make([]string, 0, 2*len(matches)+1)
	prev := 0
	for _, m := range matches {
		parts = append(parts, s[prev:m[0]], s[m[2]:m[3]])
		prev = m[1]
	}
	return append(parts, s[prev:])
}
