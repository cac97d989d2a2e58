package errors

import (
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorInfo metadata key prefix for per-field violation reasons.
const violationReasonKey = "_errors.violation_reason."

// ToGRPC renders the response as a gRPC status carrying ErrorInfo and, for
// InvalidArgument with violations, BadRequest details.
func (e ErrorResponse) ToGRPC() error {
	st := status.New(e.Code, e.Message)
	if info := e.errorInfo(); info != nil {
		if withInfo, err := st.WithDetails(info); err == nil {
			st = withInfo
		}
	}
	if br := e.badRequest(); br != nil {
		if withBR, err := st.WithDetails(br); err == nil {
			st = withBR
		}
	}
	return st.Err()
}

func (e ErrorResponse) errorInfo() *errdetails.ErrorInfo {
	meta := cloneDetails(e.Details)
	for _, v := range e.Violations {
		if v.Field == "" || v.Reason == "" {
			continue
		}
		if meta == nil {
			meta = make(map[string]string, len(e.Violations))
		}
		meta[violationReasonKey+v.Field] = v.Reason
	}
	if e.Reason == "" && e.Domain == "" && len(meta) == 0 {
		return nil
	}
	return &errdetails.ErrorInfo{Reason: string(e.Reason), Domain: e.Domain, Metadata: meta}
}

func (e ErrorResponse) badRequest() *errdetails.BadRequest {
	if e.Code != codes.InvalidArgument || len(e.Violations) == 0 {
		return nil
	}
	fvs := make([]*errdetails.BadRequest_FieldViolation, len(e.Violations))
	for i, v := range e.Violations {
		desc := v.Description
		if desc == "" {
			desc = v.Reason
		}
		fvs[i] = &errdetails.BadRequest_FieldViolation{Field: v.Field, Description: desc}
	}
	return &errdetails.BadRequest{FieldViolations: fvs}
}

// FromGRPC is the inverse of ToGRPC. Non-status errors become Unknown.
func FromGRPC(err error) ErrorResponse {
	st, ok := status.FromError(err)
	if !ok {
		return Unknown()
	}
	out := New(st.Message(), st.Code(), nil)

	var reasons map[string]string
	for _, d := range st.Details() {
		switch x := d.(type) {
		case *errdetails.ErrorInfo:
			var details map[string]string
			details, reasons = splitErrorInfoMetadata(x.GetMetadata())
			if x.GetReason() != "" {
				out.Reason = Reason(x.GetReason())
			}
			out.Domain = x.GetDomain()
			out = out.WithDetails(details)
		case *errdetails.BadRequest:
			out.Violations = make([]FieldViolation, 0, len(x.GetFieldViolations()))
			for _, fv := range x.GetFieldViolations() {
				out.Violations = append(out.Violations, FieldViolation{
					Field:       fv.GetField(),
					Description: fv.GetDescription(),
				})
			}
		}
	}

	// ErrorInfo and BadRequest may arrive in either order.
	for i, v := range out.Violations {
		if r, ok := reasons[v.Field]; ok {
			out.Violations[i].Reason = r
		}
	}
	return out
}

// splitErrorInfoMetadata separates plain details from per-field violation reasons.
func splitErrorInfoMetadata(md map[string]string) (details, reasons map[string]string) {
	details = make(map[string]string, len(md))
	for k, v := range md {
		field, isReason := strings.CutPrefix(k, violationReasonKey)
		switch {
		case !isReason:
			details[k] = v
		case field != "":
			if reasons == nil {
				reasons = make(map[string]string)
			}
			reasons[field] = v
		}
	}
	return details, reasons
}
