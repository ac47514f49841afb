package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/interaction"
	"github.com/Faultbox/founder-galaxy/internal/registry"
)

const maxBodyBytes = 64 << 10

// ErrorType is the machine-readable error class sent to clients.
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRateLimit  ErrorType = "rate_limited"
	ErrorTypeInternal   ErrorType = "internal"
)

// ErrorResponse represents the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// validationError marks a malformed request.
type validationError struct{ err error }

func (e validationError) Error() string { return e.err.Error() }
func (e validationError) Unwrap() error { return e.err }

func invalid(err error) error {
	return validationError{err: err}
}

func classify(err error) (ErrorType, int) {
	var ve validationError
	switch {
	case errors.Is(err, interaction.ErrUnknownPOI), errors.Is(err, registry.ErrUnknownCategory):
		return ErrorTypeNotFound, http.StatusNotFound
	case errors.As(err, &ve):
		return ErrorTypeValidation, http.StatusBadRequest
	default:
		return ErrorTypeInternal, http.StatusInternalServerError
	}
}

// writeError logs err and sends it as JSON. Client errors log at debug.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	errType, status := classify(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", fields...)
	} else {
		log.Debug("request rejected", fields...)
	}
	sendError(w, errType, err.Error(), status)
}

func sendError(w http.ResponseWriter, errType ErrorType, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   string(errType),
		Message: message,
		Code:    status,
	})
}

// writeJSON sends data with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return invalid(fmt.Errorf("decode body: %w", err))
	}
	return nil
}
