package i18n

import (
	"fmt"
	"strconv"
	"strings"
)

// RootTemplate selects the root scope of a message.
const RootTemplate = -1

// IsRootTemplateMessage reports whether subTemplateIndex selects the root scope.
func IsRootTemplateMessage(subTemplateIndex int) bool {
	return subTemplateIndex == RootTemplate
}

// RemoveInnerTemplateTranslation removes everything inside the sub-templates of
// a message. The boundary markers stay so the sub-template anchors can still be
// created at the right position.
func RemoveInnerTemplateTranslation(message string) (string, error) {
	var res strings.Builder
	index := 0
	inTemplate := false
	var tagMatched string
	for _, m := range subTemplateRegexp.FindAllStringSubmatchIndex(message, -1) {
		if !inTemplate {
			res.WriteString(message[index:m[1]])
			tagMatched = message[m[2]:m[3]]
			inTemplate = true
		} else if message[m[0]:m[1]] == Marker+"/*"+tagMatched+Marker {
			index = m[0]
			inTemplate = false
		}
	}
	if inTemplate {
		return "", &MessageError{
			Message: message,
			Err:     fmt.Errorf("%w: no closing marker for %q", ErrUnresolvableSubTemplate, tagMatched),
		}
	}
	res.WriteString(message[index:])
	return res.String(), nil
}

// GetTranslationForTemplate extracts the part of a message that belongs to one
// template scope.
//
// A translated message can span multiple templates:
//
//	<div i18n>Translate <span *ngIf>me</span>!</div>
//
// With RootTemplate every sub-template is emptied; otherwise the content of
// sub-template subTemplateIndex is returned with its own nested sub-templates
// emptied.
func GetTranslationForTemplate(message string, subTemplateIndex int) (string, error) {
	if IsRootTemplateMessage(subTemplateIndex) {
		return RemoveInnerTemplateTranslation(message)
	}

	sub := strconv.Itoa(subTemplateIndex)
	start, end := -1, -1
	for _, loc := range subTemplateRegexp.FindAllStringSubmatchIndex(message, -1) {
		tag := message[loc[2]:loc[3]]
		if tag[strings.IndexByte(tag, ':')+1:] != sub {
			continue
		}
		isClosing := message[loc[0]+len(Marker)] == '/'
		if start < 0 {
			if !isClosing {
				start = loc[1]
			}
			continue
		}
		if isClosing {
			end = loc[0]
			break
		}
	}
	if start < 0 {
		return "", &MessageError{
			Message: message,
			Err:     fmt.Errorf("%w: sub-template %d not found", ErrUnresolvableSubTemplate, subTemplateIndex),
		}
	}
	if end < 0 {
		return "", &MessageError{
			Message: message,
			Err:     fmt.Errorf("%w: sub-template %d is not closed", ErrUnresolvableSubTemplate, subTemplateIndex),
		}
	}
	return RemoveInnerTemplateTranslation(message[start:end])
}
