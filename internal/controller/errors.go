// internal/controller/errors.go
package controller

import (
	"errors"
	"net/http"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
)

// writeError maps the service error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var mailingNotFound *appErrors.ErrMailingNotFound
	var recipientNotFound *appErrors.ErrRecipientNotFound
	var messageNotFound *appErrors.ErrMessageNotFound
	var userNotFound *appErrors.ErrUserNotFound
	var notRunning *appErrors.ErrMailingNotRunning
	var emailTaken *appErrors.ErrEmailTaken

	switch {
	case errors.As(err, &mailingNotFound),
		errors.As(err, &recipientNotFound),
		errors.As(err, &messageNotFound),
		errors.As(err, &userNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &notRunning), errors.As(err, &emailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, appErrors.ErrInvalidCredentials), errors.Is(err, appErrors.ErrInvalidToken):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, appErrors.ErrUserInactive), errors.Is(err, appErrors.ErrUserBlocked):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, appErrors.ErrInvalidEmail), errors.Is(err, appErrors.ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
