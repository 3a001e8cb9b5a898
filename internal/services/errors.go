package services

import (
	"errors"
	"net/http"
	"strings"

	"leadcapture/internal/domain"
	"leadcapture/internal/store"
	apperrors "leadcapture/pkg/errors"
)

const internalErrorMessage = "Internal server error"

var (
	errInvalidJSON  = apperrors.New(apperrors.ErrCodeInvalidInput, "Invalid JSON data")
	errBodyTooLarge = apperrors.New(apperrors.ErrCodeInvalidInput, "Request body too large")
)

func notFound(resource string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeNotFound, resource+" not found")
}

func invalidStatus[T ~string](valid []T) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeInvalidState,
		"Invalid status. Must be one of: "+strings.Join(domain.Strings(valid), ", "))
}

// lookupError turns a store lookup failure into the error answered to the caller.
func lookupError(err error, resource string) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound(resource)
	}
	return apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to load "+strings.ToLower(resource), err)
}

// fail answers err with the matching status and envelope. Internal failures
// are logged and reported without detail.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	appErr, ok := apperrors.As(err)

	if !ok || status == http.StatusInternalServerError {
		a.log.WithError(err).WithFields(requestFields(r)).Error("request failed")
		a.respondError(w, r, http.StatusInternalServerError, internalErrorMessage, nil)
		return
	}

	var extra map[string]any
	if appErr.Code == apperrors.ErrCodeValidation {
		details := appErr.Details
		if details == nil {
			details = []string{}
		}
		extra = map[string]any{"validation_errors": details}
	}
	a.respondError(w, r, status, appErr.Message, extra)
}
