package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"backoffice/internal/core"
	"backoffice/internal/logging"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
	Details   string `json:"details,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	writeErrorResponse(w, status, errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	writeJSONStatus(w, status, resp)
}

// writeServiceError maps errors returned by the application service onto
// HTTP responses. Unexpected errors are logged and reported as 500; their
// text reaches the client only when exposeErrors is set.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op, entity string, err error) {
	switch {
	case errors.Is(err, core.ErrUnknownEntity):
		writeError(w, r, "unknown entity: "+entity, "UNKNOWN_ENTITY", http.StatusNotFound)
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, "record not found", "NOT_FOUND", http.StatusNotFound)
	default:
		reqID := requestIDFromContext(r.Context())
		logger := logging.Logger(logging.SourceWeb).With("op", op, "entity", entity, "request_id", reqID)
		if claims := authFromContext(r.Context()); claims != nil {
			logger = logger.With("user_id", claims.UserID)
		}
		logger.Error("request failed", "err", err)
		resp := errorResponse{Error: "internal server error", Code: "INTERNAL_ERROR", RequestID: reqID}
		if h.exposeErrors {
			resp.Details = err.Error()
		}
		writeErrorResponse(w, http.StatusInternalServerError, resp)
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, "endpoint not found", "NOT_FOUND", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, "method not allowed", "METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed)
}
