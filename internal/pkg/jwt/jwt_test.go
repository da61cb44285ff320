package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	tok, err := Sign("backend-token", "admin@kmab.com", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", claims.BackendToken)
	assert.Equal(t, "admin@kmab.com", claims.Email)
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := Sign("backend-token", "", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not-a-jwt")
	assert.Error(t, err)
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	tok, err := Sign("backend-token", "", time.Hour)
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = Parse(tampered)
	assert.Error(t, err)
}
