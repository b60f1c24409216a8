package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		// Duplicate registration is a 400, not a 409.
		{CodeAlreadyExists, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeInvalidToken, http.StatusForbidden},
		{CodeForbidden, http.StatusForbidden},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeUpstream, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := AlreadyExists("Email already registered")
	assert.True(t, Is(err, ErrAlreadyExists))
	assert.False(t, Is(err, ErrNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, CodeUpstream, "Failed to search books")

	assert.Equal(t, "Failed to search books: connection refused", err.Error())
	assert.Equal(t, cause, Unwrap(err))
	// The caller-facing message never includes the cause.
	assert.Equal(t, "Failed to search books", err.Message)
}
