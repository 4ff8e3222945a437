package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsignedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestIdentityDecodedFromClaims(t *testing.T) {
	s := New()
	s.SetToken(unsignedToken(t, jwt.MapClaims{
		"sub":   "auditor-17",
		"email": "r.lee@example.com",
		"org":   "Meridian LLP",
	}))

	require.True(t, s.Authenticated())
	identity := s.Identity()
	assert.Equal(t, "auditor-17", identity.Subject)
	assert.Equal(t, "r.lee@example.com", identity.Email)
	assert.Equal(t, "Meridian LLP", identity.Organization)
}

func TestEmptyTokenClearsIdentity(t *testing.T) {
	s := New()
	s.SetToken(unsignedToken(t, jwt.MapClaims{"sub": "auditor-17"}))
	s.SetToken("")

	assert.False(t, s.Authenticated())
	assert.Equal(t, Identity{}, s.Identity())
}

func TestGarbageTokenYieldsEmptyIdentityButKeepsToken(t *testing.T) {
	s := New()
	s.SetToken("not-a-jwt")

	// The token is still attached to requests; only the display identity
	// is unavailable.
	assert.True(t, s.Authenticated())
	assert.Equal(t, Identity{}, s.Identity())
}

func TestDiagnosticHandoff(t *testing.T) {
	d := NewDiagnosticContext()
	assert.Nil(t, d.Last())

	d.Set("flux", "2 accounts flagged", map[string]int{"flagged": 2})
	last := d.Last()
	require.NotNil(t, last)
	assert.Equal(t, "flux", last.Tool)
	assert.False(t, last.CapturedAt.IsZero())

	// Last returns a copy; mutating it does not affect the held value.
	last.Tool = "mutated"
	assert.Equal(t, "flux", d.Last().Tool)

	d.Clear()
	assert.Nil(t, d.Last())
}
