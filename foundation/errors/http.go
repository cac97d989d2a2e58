package errors

import (
	"encoding/json"
	"net/http"

	"google.golang.org/grpc/codes"
)

// nginx's "client closed request"; net/http has no constant for it.
const statusClientClosedRequest = 499

var httpStatusByCode = map[codes.Code]int{
	codes.InvalidArgument:  http.StatusBadRequest,
	codes.OutOfRange:       http.StatusBadRequest,
	codes.Canceled:         statusClientClosedRequest,
	codes.DeadlineExceeded: http.StatusGatewayTimeout,
	codes.NotFound:         http.StatusNotFound,
	codes.Unimplemented:    http.StatusNotImplemented,
	codes.Unavailable:      http.StatusServiceUnavailable,
}

// HTTPStatus maps a gRPC code to the HTTP status ToHTTP writes. Unlisted
// codes are 500.
func HTTPStatus(code codes.Code) int {
	if s, ok := httpStatusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// StatusCode is the HTTP status for e. It refines HTTPStatus where the reason
// has a closer HTTP match than the code, as with method_not_allowed.
func (e ErrorResponse) StatusCode() int {
	if e.Code == codes.Unimplemented && e.Reason == reasonMethodNotAllowed {
		return http.StatusMethodNotAllowed
	}
	return HTTPStatus(e.Code)
}

// ToHTTP writes e as an uncacheable JSON body.
func (e ErrorResponse) ToHTTP(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(e.StatusCode())
	_ = json.NewEncoder(w).Encode(e.wire())
}
