package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/crucial707/itadmin/internal/repo"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	out := map[string]any{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	writeJSON(w, status, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst. On failure it writes the
// response (400, or 413 past the body limit) and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		JSONError(w, "request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, io.EOF):
		JSONError(w, "request body is empty", http.StatusBadRequest)
	default:
		JSONError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
	}
	return false
}

// storeError maps repository errors onto HTTP responses. Unclassified errors
// are logged with the request id and reported as a generic 500.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repo.ErrConflict):
		JSONError(w, conflictMessage(err), http.StatusConflict)
	case errors.Is(err, repo.ErrInvalidReference):
		JSONError(w, conflictMessage(err), http.StatusBadRequest)
	default:
		logError(r, "storage error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

// logError logs err with the request id so a 500 can be traced back.
func logError(r *http.Request, msg string, err error) {
	slog.Error(msg,
		"request_id", chimw.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
}

// conflictMessage drops the driver detail appended after the sentinel.
func conflictMessage(err error) string {
	msg, _, _ := strings.Cut(err.Error(), ":")
	return msg
}

// ====== Validation ======

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationFields validates s and returns problems keyed by JSON field name.
func validationFields(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "required"
		case "oneof":
			fields[fe.Field()] = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
		case "max":
			fields[fe.Field()] = "must be at most " + fe.Param() + " characters"
		case "email":
			fields[fe.Field()] = "must be a valid email address"
		default:
			fields[fe.Field()] = "invalid"
		}
	}
	return fields
}
