package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidationMessage(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name     string
		req      interface{}
		expected string
	}{
		{
			name:     "missing username",
			req:      &SignupRequest{Email: "alice@example.com", Password: "password123"},
			expected: "username is required",
		},
		{
			name:     "bad email",
			req:      &SignupRequest{Username: "alice", Email: "not-an-email", Password: "password123"},
			expected: "email must be a valid email address",
		},
		{
			name:     "short password",
			req:      &SignupRequest{Username: "alice", Email: "alice@example.com", Password: "123"},
			expected: "password must be at least 6 characters",
		},
		{
			name:     "missing volume id",
			req:      &SaveBookRequest{Title: "Dune"},
			expected: "googlebooksid is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			assert.Error(t, err)

			msg := validationMessage(err)
			assert.Equal(t, tt.expected, msg)
			// Internal type names must never surface.
			assert.NotContains(t, msg, "SignupRequest")
			assert.NotContains(t, msg, "SaveBookRequest")
		})
	}
}

func TestValidationMessage_NonValidatorError(t *testing.T) {
	assert.Equal(t, "invalid request body", validationMessage(assert.AnError))
}
