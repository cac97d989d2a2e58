package errors

import (
	"context"
	"errors"
)

const reasonUnexpected = "unexpected_error"

// ToErrorResponse converts any error into an ErrorResponse:
//   - ErrorResponse and *ErrorResponse, also wrapped, pass through;
//   - context cancellation and deadlines map to Canceled and DeadlineExceeded;
//   - InvariantError, also wrapped (iban.ParseError wraps one), becomes a
//     validation response.
//
// Anything else, nil included, is Internal with reason "unexpected_error".
func ToErrorResponse(err error) ErrorResponse {
	var (
		resp  ErrorResponse
		respP *ErrorResponse
		inv   InvariantError
	)
	switch {
	case err == nil:
		return Internal().WithReason(reasonUnexpected)
	case errors.Is(err, context.Canceled):
		return Canceled()
	case errors.Is(err, context.DeadlineExceeded):
		return DeadlineExceeded()
	case errors.As(err, &resp):
		return resp
	case errors.As(err, &respP) && respP != nil:
		return *respP
	case errors.As(err, &inv):
		return inv.response()
	default:
		return Internal().WithReason(reasonUnexpected)
	}
}

// ToValidation is a shortcut for a single-field validation response.
func ToValidation(field, reason string) ErrorResponse {
	return ValidationFields(map[string]string{field: reason})
}
