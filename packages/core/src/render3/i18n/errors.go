package i18n

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedIcu is returned when a block has an ICU header that cannot be parsed.
	ErrMalformedIcu = errors.New("malformed ICU expression")

	// ErrUnresolvableSubTemplate is returned when a sub-template cannot be located in a message.
	ErrUnresolvableSubTemplate = errors.New("unresolvable sub-template")

	// ErrIcuInAttribute is returned when a translated attribute contains an ICU expression.
	ErrIcuInAttribute = errors.New("ICU expressions are not supported in attributes")

	// ErrInvalidPlaceholder is returned for element or template placeholders that do not
	// reference a declared template slot or are not balanced.
	ErrInvalidPlaceholder = errors.New("invalid placeholder")
)

// MessageError reports a failure to compile a message and names the message
// so translators can find it.
type MessageError struct {
	Message string
	Err     error
}

func (e *MessageError) Error() string {
	switch {
	case errors.Is(e.Err, ErrMalformedIcu):
		return fmt.Sprintf("Unable to parse ICU expression in %q message: %v", e.Message, e.Err)
	case errors.Is(e.Err, ErrUnresolvableSubTemplate):
		return fmt.Sprintf("Tag mismatch: unable to find the end of the sub-template in the translation %q: %v", e.Message, e.Err)
	case errors.Is(e.Err, ErrIcuInAttribute):
		return fmt.Sprintf("ICU expressions are not supported in attributes. Message: %q.", e.Message)
	}
	return fmt.Sprintf("unable to compile %q message: %v", e.Message, e.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}
