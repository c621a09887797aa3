package httpx

import (
	"net/http"

	"github.com/goccy/go-json"

	"libraryapi/internal/logging"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("encode response")
	}
}

// JSONError writes {error, message}. message may be empty.
func JSONError(w http.ResponseWriter, status int, errMsg, message string) {
	JSON(w, status, ErrorResponse{Error: errMsg, Message: message})
}

// JSONInternalError logs err against the request and writes a 500 carrying
// the request id so the failure can be traced.
func JSONInternalError(w http.ResponseWriter, r *http.Request, errMsg string, err error) {
	logging.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(errMsg)
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:     errMsg,
		Message:   err.Error(),
		RequestID: RequestIDFrom(r),
	})
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// RequestIDFrom returns the id assigned by RequestIDMiddleware.
func RequestIDFrom(r *http.Request) string {
	return logging.RequestIDFromContext(r.Context())
}
