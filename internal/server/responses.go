package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/document"
	"github.com/spigell/ats-scorer/internal/interview"
)

type errorBody struct {
	Error string `json:"error"`
}

// badRequest marks malformed client input.
type badRequest struct {
	err error
}

func (e *badRequest) Error() string { return e.err.Error() }

func (e *badRequest) Unwrap() error { return e.err }

func requestError(err error) error {
	return &badRequest{err: err}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeErr maps err to a status code and a client-facing message.
func writeErr(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	writeError(w, status, message)
}

func statusFor(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	var bad *badRequest

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "upload is too large"
	case errors.Is(err, interview.ErrMissingProfile),
		errors.Is(err, interview.ErrMissingJobDescription):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &bad):
		return http.StatusBadRequest, "invalid form: " + bad.err.Error()
	case errors.Is(err, document.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity, "unsupported document format"
	case errors.Is(err, document.ErrEncrypted):
		return http.StatusUnprocessableEntity, "document is password-protected"
	case errors.Is(err, document.ErrNoText):
		return http.StatusUnprocessableEntity, "document has no extractable text"
	case errors.Is(err, document.ErrCorrupt):
		return http.StatusUnprocessableEntity, "document could not be read"
	case errors.Is(err, ai.ErrNotConfigured):
		return http.StatusNotImplemented, "AI provider is not configured"
	}

	if kind, ok := ai.UpstreamKindOf(err); ok {
		switch kind {
		case ai.UpstreamRateLimit:
			return http.StatusTooManyRequests, "AI provider quota exhausted, try again later"
		case ai.UpstreamAuth:
			return http.StatusUnauthorized, "AI provider rejected the API key"
		case ai.UpstreamForbidden:
			return http.StatusForbidden, "AI provider denied access"
		case ai.UpstreamTimeout:
			return http.StatusGatewayTimeout, "AI provider timed out"
		}
	}

	return http.StatusBadGateway, "analysis failed"
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
