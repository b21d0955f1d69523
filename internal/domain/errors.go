package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks a caller-fixable failure: an unknown username,
// shop or equipment reference, an ownership mismatch, or an integrity
// conflict surfaced from the store. The boundary layer translates it to
// a 400-class response; everything else is treated as a server fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
