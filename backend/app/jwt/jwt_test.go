package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	s := &Signer{Secret: []byte("secret"), Issuer: "pupshare", ExpMin: 10}
	token, claims, err := s.Sign("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.Equal(t, "pupshare", parsed.Issuer)

	_, other, err := s.Sign("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, other.ID)
}

func TestParseRejects(t *testing.T) {
	s := &Signer{Secret: []byte("secret"), ExpMin: 10}
	token, _, err := s.Sign("user-1")
	require.NoError(t, err)

	wrongKey := &Signer{Secret: []byte("other"), ExpMin: 10}
	_, err = wrongKey.Parse(token)
	assert.Error(t, err)
	assert.False(t, Expired(err))

	old := &Signer{Secret: []byte("secret"), ExpMin: -5}
	stale, _, err := old.Sign("user-1")
	require.NoError(t, err)
	_, err = s.Parse(stale)
	assert.True(t, Expired(err))

	_, err = s.Parse("not.a.token")
	assert.Error(t, err)
}
