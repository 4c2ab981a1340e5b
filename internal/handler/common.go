package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxBodyBytes caps a JSON request body.
const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	BaseResponse
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// IDResponse is returned by operations that report only which record changed.
type IDResponse struct {
	BaseResponse
	ID uuid.UUID `json:"id"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// handleError maps a domain error class onto an HTTP status. Anything
// unclassified is logged and reported as a 500 without detail.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid input", Fields: verr.Fields})
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, domain.ErrInvariantViolation):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"requestID", chmw.GetReqID(r.Context()),
		)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads the request body into dst. It writes the 400 itself and
// reports false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// idParam parses the {id} path parameter.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return uuidParam(w, r, "id")
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional uuid query parameter.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.Invalid(name, "must be a UUID")
	}
	return &id, nil
}

// queryEnum reads an optional closed-set query parameter. Validation is left
// to the service.
func queryEnum[T ~string](r *http.Request, name string) *T {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v := T(raw)
	return &v
}
