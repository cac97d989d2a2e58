// Package validator holds the shared go-playground validator instance with
// IBAN-aware tags:
//
//	iban          value parses (separators allowed) and passes the checksum
//	iban_country  value is a supported ISO 3166 alpha-2 country code
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vortex-fintech/go-iban/iban"
)

var v *validator.Validate

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)

	// Registration only fails for an empty tag or a nil func.
	if err := v.RegisterValidation("iban", isIBAN); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("iban_country", isIBANCountry); err != nil {
		panic(err)
	}
}

func Instance() *validator.Validate {
	return v
}

// Validate checks i and returns field path -> reason code, or nil when valid.
// Field paths use json names and omit the root struct.
func Validate(i any) map[string]string {
	err := v.Struct(i)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return map[string]string{"_error": "validation_failed"}
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[fieldPath(e)] = mapTagToCode(e.Tag())
	}
	return out
}

func fieldPath(e validator.FieldError) string {
	if _, rest, ok := strings.Cut(e.Namespace(), "."); ok && rest != "" {
		return rest
	}
	return e.Field()
}

func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func isIBAN(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	parsed, err := iban.ParseLoose(fl.Field().String())
	return err == nil && iban.Validate(parsed)
}

func isIBANCountry(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	s := fl.Field().String()
	return len(s) == 2 && s == strings.ToUpper(s) && iban.IsSupportedCountry(s)
}
