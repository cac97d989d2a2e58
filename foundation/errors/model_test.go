package errors

import (
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestErrorResponseToString(t *testing.T) {
	e := New("Invalid argument", codes.InvalidArgument, map[string]string{"iban": "too_short"}).
		WithReason("validation_failed")
	s := e.ToString()
	for _, want := range []string{`"code":"InvalidArgument"`, `"reason":"validation_failed"`, `"iban":"too_short"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %s in %s", want, s)
		}
	}
}

func TestNew_ClonesDetailsMap(t *testing.T) {
	details := map[string]string{"iban": "too_short"}
	e := New("Invalid argument", codes.InvalidArgument, details)
	details["iban"] = "mutated"

	if e.Details["iban"] != "too_short" {
		t.Fatalf("expected details to be cloned, got %q", e.Details["iban"])
	}
}

func TestWithDetail_DoesNotMutateSource(t *testing.T) {
	base := InvalidArgument().WithDetail("iban", "too_short")
	derived := base.WithDetail("country_code", "XX")

	if _, ok := base.Details["country_code"]; ok {
		t.Fatalf("base response mutated: %+v", base.Details)
	}
	if derived.Details["country_code"] != "XX" || derived.Details["iban"] != "too_short" {
		t.Fatalf("unexpected derived details: %+v", derived.Details)
	}
}

func TestWithDetails_DoesNotMutateSourceAndInput(t *testing.T) {
	base := InvalidArgument().WithDetails(map[string]string{"iban": "too_short"})
	extra := map[string]string{"country_code": "XX"}
	derived := base.WithDetails(extra)
	extra["country_code"] = "mutated"

	if _, ok := base.Details["country_code"]; ok {
		t.Fatalf("base response mutated: %+v", base.Details)
	}
	if derived.Details["country_code"] != "XX" {
		t.Fatalf("expected cloned input details, got %+v", derived.Details)
	}
}

func TestWithViolations_ClonesSlice(t *testing.T) {
	in := []FieldViolation{{Field: "iban", Reason: "too_long"}}
	e := InvalidArgument().WithViolations(in)
	in[0].Reason = "mutated"

	if e.Violations[0].Reason != "too_long" {
		t.Fatalf("violations not cloned: %+v", e.Violations)
	}
}

func TestViolationsFromMap_SortedByField(t *testing.T) {
	got := ViolationsFromMap(map[string]string{"iban": "too_short", "country": "unknown_country"})
	if len(got) != 2 || got[0].Field != "country" || got[1].Field != "iban" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if ViolationsFromMap(nil) != nil {
		t.Fatalf("nil map must produce nil violations")
	}
}

func TestError_DelegatesToToString(t *testing.T) {
	e := InvalidArgument().WithDetail("field", "iban")
	if e.Error() != e.ToString() {
		t.Fatalf("Error() must match ToString()")
	}
}
