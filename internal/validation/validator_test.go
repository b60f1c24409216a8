package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alawler14/Bibliotheca/internal/errors"
	"github.com/alawler14/Bibliotheca/internal/validation"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=100"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := registerRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       registerRequest
		wantField string
	}{
		{
			name: "missing email",
			req: registerRequest{
				Password: "password123",
			},
			wantField: "email",
		},
		{
			name: "invalid email",
			req: registerRequest{
				Email:    "not-an-email",
				Password: "password123",
			},
			wantField: "email",
		},
		{
			name: "password too short",
			req: registerRequest{
				Email:    "test@example.com",
				Password: "short",
			},
			wantField: "password",
		},
		{
			name: "password too long",
			req: registerRequest{
				Email:    "test@example.com",
				Password: string(make([]byte, 1025)),
			},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *errors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, errors.CodeValidation, domainErr.Code)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	req := registerRequest{
		Password: "password123",
	}

	err := v.Validate(req)
	require.Error(t, err)

	var domainErr *errors.Error
	require.True(t, errors.As(err, &domainErr))
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)

	// Should use the JSON tag name "email", not the field name "Email".
	assert.Contains(t, details, "email")
	assert.NotContains(t, details, "Email")
}
