package errors

import (
	"fmt"
	"strings"

	play "github.com/go-playground/validator/v10"
)

const fallbackReason = "invalid"

// FromPlayground adapts go-playground/validator errors into InvalidArgument
// with one violation per field. tagToReason maps validator tags to wire
// reasons; unmapped tags become "invalid".
func FromPlayground(err play.ValidationErrors, tagToReason map[string]string) ErrorResponse {
	violations := make([]FieldViolation, len(err))
	for i, fe := range err {
		path := namespacePath(fe)
		reason, ok := tagToReason[fe.Tag()]
		if !ok || reason == "" {
			reason = fallbackReason
		}
		violations[i] = FieldViolation{
			Field:       path,
			Reason:      reason,
			Description: fmt.Sprintf("%s validation failed (%s)", path, fe.Tag()),
		}
	}
	return ValidationViolations(violations)
}

// namespacePath drops the root struct name: "Request.Creditor.IBAN" -> "Creditor.IBAN".
func namespacePath(fe play.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok && rest != "" {
		return rest
	}
	return fe.Field()
}
