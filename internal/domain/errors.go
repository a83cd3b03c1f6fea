package domain

import (
	"errors"
	"fmt"
)

// ActionError is a failed user-initiated action carrying the message to show
type ActionError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *ActionError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is
func (e *ActionError) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// UserMessage extracts the display message of an ActionError
func UserMessage(err error) (string, bool) {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Message, true
	}
	return "", false
}
