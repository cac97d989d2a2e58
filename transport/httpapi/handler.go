// Package httpapi exposes IBAN parsing and validation over JSON/HTTP.
//
//	POST /v1/iban/validate          {"iban": "..."}
//	GET  /v1/iban/countries
//	GET  /v1/iban/countries/{code}
//
// Errors are foundation/errors ErrorResponse bodies. Raw IBANs are never
// logged; see logger.IBAN.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	ferrors "github.com/vortex-fintech/go-iban/foundation/errors"
	"github.com/vortex-fintech/go-iban/foundation/logger"
	"github.com/vortex-fintech/go-iban/foundation/validator"
	"github.com/vortex-fintech/go-iban/iban"
)

const DefaultMaxBodyBytes int64 = 4 << 10

type Options struct {
	Log     logger.Interface
	Metrics *Metrics

	// MaxBodyBytes caps request bodies. Default: DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

type Handler struct {
	log     logger.Interface
	metrics *Metrics
	maxBody int64
	router  chi.Router
}

func New(opts Options) *Handler {
	h := &Handler{
		log:     opts.Log,
		metrics: opts.Metrics,
		maxBody: opts.MaxBodyBytes,
	}
	if h.log == nil {
		h.log = logger.Nop()
	}
	if h.maxBody <= 0 {
		h.maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(withAccessLog(h.log, h.metrics))
	r.Use(withRecover(h.log))
	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Route("/v1/iban", func(r chi.Router) {
		r.Post("/validate", h.validate)
		r.Get("/countries", h.countries)
		r.Head("/countries", h.countries)
		r.Get("/countries/{code}", h.country)
		r.Head("/countries/{code}", h.country)
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := h.decode(w, r, &req); err != nil {
		h.log.WarnwCtx(r.Context(), "bad request body", "error", err)
		ferrors.InvalidArgument().WithMessage("Request body must be a JSON object").ToHTTP(w)
		return
	}
	if fields := validator.Validate(req); fields != nil {
		ferrors.ValidationFields(fields).ToHTTP(w)
		return
	}

	v, err := iban.ParseLoose(req.IBAN)
	if err != nil {
		reason, _ := iban.ReasonOf(err)
		h.metrics.observeParse(string(reason))
		h.log.InfowCtx(r.Context(), "iban rejected", logger.IBAN(req.IBAN), "reason", string(reason))
		ferrors.ToErrorResponse(err).ToHTTP(w)
		return
	}
	h.metrics.observeParse(resultOK)

	var reason iban.Reason
	if err := iban.Verify(v); err != nil {
		reason, _ = iban.ReasonOf(err)
		h.metrics.observeValidate(string(reason))
	} else {
		h.metrics.observeValidate(resultOK)
	}
	h.log.InfowCtx(r.Context(), "iban checked", logger.IBAN(v.MachineForm()), "valid", reason == "", "reason", string(reason))

	writeJSON(w, http.StatusOK, newValidateResponse(v, reason))
}

func (h *Handler) countries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, listCountries())
}

func (h *Handler) country(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	n, ok := iban.CountryLength(code)
	if !ok {
		ferrors.NotFoundWith("country_code", code).WithMessage("Country not supported").ToHTTP(w)
		return
	}
	writeJSON(w, http.StatusOK, countryResponse{Code: code, Length: n})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	ferrors.NotFoundWith("path", r.URL.Path).ToHTTP(w)
}

var probeMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost}

// methodNotAllowed answers 405 with an Allow header listing the methods the
// path is routed for.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	allowed := make([]string, 0, len(probeMethods))
	for _, m := range probeMethods {
		if h.router.Match(chi.NewRouteContext(), m, r.URL.Path) {
			allowed = append(allowed, m)
		}
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	ferrors.MethodNotAllowed(r.Method).ToHTTP(w)
}

// decode reads exactly one JSON value of at most maxBody bytes.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	buf, err := json.Marshal(body)
	if err != nil {
		ferrors.Internal().ToHTTP(w)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)+1))
	w.WriteHeader(status)
	_, _ = w.Write(append(buf, '\n'))
}
