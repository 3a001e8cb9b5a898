package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "Invalid JSON data"), http.StatusBadRequest},
		{New(ErrCodeInvalidState, "Invalid status"), http.StatusBadRequest},
		{Validation([]string{"Name must be between 2 and 100 characters"}), http.StatusUnprocessableEntity},
		{New(ErrCodeNotFound, "Contact not found"), http.StatusNotFound},
		{New(ErrCodeRateLimited, "Too many requests"), http.StatusTooManyRequests},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
		{fmt.Errorf("lookup: %w", New(ErrCodeNotFound, "missing")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeInternalError, "failed to save contact", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, IsInternal(err))
	assert.False(t, IsNotFound(err))
}

func TestValidationCarriesDetails(t *testing.T) {
	err := Validation([]string{"a", "b"})

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, appErr.Details)
	assert.True(t, IsValidation(err))
}
