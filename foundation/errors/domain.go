package errors

import (
	"errors"
	"fmt"
)

// InvariantError is a field-level domain rule violation, for example
// "iban: too_short". Domain packages return it (directly or wrapped) so that
// ToErrorResponse can turn it into a validation response without knowing the
// domain.
type InvariantError struct {
	Field  string
	Reason string
}

func (e InvariantError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e InvariantError) response() ErrorResponse {
	if e.Field == "" {
		return InvalidArgument().WithReason(e.Reason)
	}
	return ToValidation(e.Field, e.Reason)
}

// DomainInvariant creates a field-level invariant error.
func DomainInvariant(field, reason string) error {
	return InvariantError{Field: field, Reason: reason}
}

// IsInvariant reports whether err is or wraps an InvariantError.
func IsInvariant(err error) bool {
	var ie InvariantError
	return errors.As(err, &ie)
}
