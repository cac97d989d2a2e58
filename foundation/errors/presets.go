package errors

import "google.golang.org/grpc/codes"

// Immutable presets; each call returns a fresh value.
func Unknown() ErrorResponse {
	return New("Unknown error occurred", codes.Unknown, nil).WithReason("unknown")
}
func InvalidArgument() ErrorResponse {
	return New("Invalid argument", codes.InvalidArgument, nil).WithReason("invalid_argument")
}
func Canceled() ErrorResponse {
	return New("Request canceled", codes.Canceled, nil).WithReason("canceled")
}
func DeadlineExceeded() ErrorResponse {
	return New("Deadline exceeded", codes.DeadlineExceeded, nil).WithReason("deadline_exceeded")
}
func NotFound() ErrorResponse {
	return New("Resource not found", codes.NotFound, nil).WithReason("not_found")
}
func Unimplemented() ErrorResponse {
	return New("Not implemented", codes.Unimplemented, nil).WithReason("unimplemented")
}
func Internal() ErrorResponse {
	return New("Internal error", codes.Internal, nil).WithReason("internal")
}
func Unavailable() ErrorResponse {
	return New("Service unavailable", codes.Unavailable, nil).WithReason("unavailable")
}

// ValidationFields builds an InvalidArgument response from field->reason pairs.
func ValidationFields(fields map[string]string) ErrorResponse {
	return InvalidArgument().
		WithReason("validation_failed").
		WithDetails(fields).
		WithViolations(ViolationsFromMap(fields))
}

func ValidationViolations(v []FieldViolation) ErrorResponse {
	return InvalidArgument().WithReason("validation_failed").WithViolations(v)
}

func NotFoundWith(resourceKey, value string) ErrorResponse {
	return NotFound().WithDetail(resourceKey, value)
}

// MethodNotAllowed is reported as Unimplemented; ToHTTP renders it as 405
// when the reason is "method_not_allowed".
func MethodNotAllowed(method string) ErrorResponse {
	return Unimplemented().
		WithReason(reasonMethodNotAllowed).
		WithMessage("Method not allowed").
		WithDetail("method", method)
}

const reasonMethodNotAllowed = "method_not_allowed"
