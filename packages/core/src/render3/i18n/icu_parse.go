package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"ngc-i18n/packages/core/src/render3/interfaces"
	"ngc-i18n/packages/core/src/util"
)

// SplitTextAndIcu breaks pattern into text and top level ICU expressions.
//
// The result alternates: even positions are text, odd positions are ICU
// expressions, and a non-empty result starts and ends with text. Brace blocks
// that are not ICU expressions stay in the surrounding text verbatim.
func SplitTextAndIcu(pattern string) ([]interfaces.Segment, error) {
	return icuParser{log: util.Log}.splitTextAndIcu(pattern)
}

// ParseIcuBlock parses the content of one `{...}` ICU block (without the
// outer braces) into an IcuExpression.
func ParseIcuBlock(pattern string) (*interfaces.IcuExpression, error) {
	return icuParser{log: util.Log}.parseIcuBlock(pattern)
}

type icuParser struct {
	log logrus.FieldLogger
}

func (p icuParser) splitTextAndIcu(pattern string) ([]interfaces.Segment, error) {
	if pattern == "" {
		return nil, nil
	}
	texts, blocks := splitBraces(pattern)
	segments := make([]interfaces.Segment, 0, 2*len(blocks)+1)
	var text strings.Builder
	text.WriteString(texts[0])
	for i, block := range blocks {
		switch {
		case icuBlockRegexp.MatchString(block):
			icu, err := p.parseIcuBlock(block)
			if err != nil {
				return nil, err
			}
			segments = append(segments, interfaces.Segment{Text: text.String()}, interfaces.Segment{Icu: icu})
			text.Reset()
		case icuHeaderRegexp.MatchString(block):
			return nil, fmt.Errorf("%w: invalid binding in %q", ErrMalformedIcu, "{"+block+"}")
		default:
			text.WriteString("{" + block + "}")
		}
		text.WriteString(texts[i+1])
	}
	return append(segments, interfaces.Segment{Text: text.String()}), nil
}

func (p icuParser) parseIcuBlock(pattern string) (*interfaces.IcuExpression, error) {
	header := icuBlockRegexp.FindStringSubmatchIndex(pattern)
	if header == nil {
		return nil, fmt.Errorf("%w: missing `binding, plural|select,` header in %q", ErrMalformedIcu, pattern)
	}
	binding := pattern[header[2]:header[3]]
	digits := strings.TrimPrefix(binding, Marker)
	if colon := strings.IndexAny(digits, ":"+Marker); colon >= 0 {
		digits = digits[:colon]
	}
	mainBinding, err := strconv.Atoi(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid main binding %q", ErrMalformedIcu, binding)
	}

	icu := &interfaces.IcuExpression{Type: interfaces.IcuTypePlural, MainBinding: mainBinding}
	if pattern[header[4]:header[5]] == "select" {
		icu.Type = interfaces.IcuTypeSelect
	}

	// Looking for (key block)+ sequence. One of the keys has to be "other".
	labels, bodies := splitBraces(pattern[header[1]:])
	for pos, label := range labels {
		key := strings.TrimSpace(label)
		if icu.Type == interfaces.IcuTypePlural {
			// Key can be "=x", we just want "x"
			key = normalizePluralKey(key)
		}
		if pos >= len(bodies) {
			if key != "" && util.DevMode {
				p.log.WithFields(logrus.Fields{"case": key, "icu": util.Truncate(pattern, 80)}).
					Warn("ignoring ICU case without a body")
			}
			break
		}
		if key == "" {
			continue
		}
		values, err := p.splitTextAndIcu(bodies[pos])
		if err != nil {
			return nil, err
		}
		icu.Cases = append(icu.Cases, key)
		icu.Values = append(icu.Values, values)
	}
	return icu, nil
}

// splitBraces splits pattern into depth-0 text runs and the contents of the
// depth-0 `{...}` blocks between them, so len(texts) == len(blocks)+1. A stray
// closing brace is kept as text, as is the remainder after an unclosed one.
func splitBraces(pattern string) (texts []string, blocks []string) {
	var text strings.Builder
	depth, open := 0, 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '{':
			if depth == 0 {
				open = i
			}
			depth++
		case c == '}' && depth > 0:
			depth--
			if depth == 0 {
				texts = append(texts, text.String())
				text.Reset()
				blocks = append(blocks, pattern[open+1:i])
			}
		case depth == 0:
			text.WriteByte(c)
		}
	}
	if depth > 0 {
		text.WriteString(pattern[open:])
	}
	return append(texts, text.String()), blocks
}

// normalizePluralKey turns "=0" into "0", replacing only the first word like
// the closure library does.
func normalizePluralKey(key string) string {
	loc := pluralKeyRegexp.FindStringSubmatchIndex(key)
	if loc == nil {
		return key
	}
	return key[:loc[0]] + key[loc[2]:loc[3]] + key[loc[1]:]
}
