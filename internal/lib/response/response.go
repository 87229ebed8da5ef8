package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bons-travail/internal/logger"
	"bons-travail/internal/service/auth"
	"bons-travail/internal/service/policy"
	"bons-travail/internal/storage"
)

type ValidationErrors struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrAuthFailure), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, policy.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateKey),
		errors.Is(err, storage.ErrDuplicateUser),
		errors.Is(err, auth.ErrBootstrapClosed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Message is the text shown to the client for err.
func Message(err error) string {
	var vErr *storage.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}

	var denied *policy.AccessDeniedError
	if errors.As(err, &denied) {
		return denied.Error()
	}

	for _, sentinel := range []error{
		auth.ErrAuthFailure,
		auth.ErrInvalidToken,
		auth.ErrBootstrapClosed,
		storage.ErrNotFound,
		storage.ErrDuplicateKey,
		storage.ErrDuplicateUser,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return "Internal error"
}

// Error writes err as plain text. Unexpected errors are logged.
func Error(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", slog.String("op", op), logger.Err(err))
	}
	http.Error(w, Message(err), status)
}

// Invalid answers 400 with the field -> rule map of a rejected request body.
func Invalid(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ValidationErrors{Error: "validation failed", Fields: fields})
}
