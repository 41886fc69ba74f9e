package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	require.NoError(t, Validate(&RegisterRequest{Username: "good_name1", Email: "a@b.co", Password: "123456"}))

	err := Validate(&RegisterRequest{Username: "no spaces", Email: "nope", Password: "123"})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "Username can only contain letters, numbers, and underscores")
	assert.Contains(t, msg, "Email must be a valid email address")
	assert.Contains(t, msg, "Password must be at least 6 characters long")
}

func TestValidateLoginNeedsIdentifier(t *testing.T) {
	assert.NoError(t, Validate(&LoginRequest{Username: "u", Password: "p"}))
	assert.NoError(t, Validate(&LoginRequest{Email: "u@example.com", Password: "p"}))
	assert.Error(t, Validate(&LoginRequest{Password: "p"}))
}

func TestValidatePatchPointers(t *testing.T) {
	assert.NoError(t, Validate(&PhotoPatch{}))
	long := strings.Repeat("x", 101)
	assert.Error(t, Validate(&PhotoPatch{Title: &long}))
	assert.Error(t, Validate(&RoleRequest{}))
}
