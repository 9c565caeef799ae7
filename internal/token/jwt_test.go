package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

const monthTTL = 30 * 24 * time.Hour

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	j, err := NewJWT("secret", "vetquestions", "vetquestions-web", monthTTL)
	require.NoError(t, err)
	return j
}

func TestNewJWT_EmptyKey(t *testing.T) {
	_, err := NewJWT("", "iss", "aud", monthTTL)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestNewJWT_NonPositiveTTL(t *testing.T) {
	_, err := NewJWT("secret", "iss", "aud", 0)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestJWT_Issue_Roundtrip(t *testing.T) {
	j := newTestJWT(t)

	tok, err := j.Issue("vet@example.com", []string{"Vet", "Normal"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Value)
	assert.NotEmpty(t, tok.ID)

	claims, err := j.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "vet@example.com", claims.Subject)
	assert.Equal(t, tok.ID, claims.ID)
	assert.Equal(t, []string{"Vet", "Normal"}, claims.Roles)
	assert.Equal(t, "vetquestions", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"vetquestions-web"}, claims.Audience)
}

func TestJWT_Issue_ExpiryIsExactlyTTLAfterIssuance(t *testing.T) {
	j := newTestJWT(t)
	fixed := time.Date(2026, 10, 16, 12, 30, 45, 987654321, time.UTC)
	j.now = func() time.Time { return fixed }

	tok, err := j.Issue("user", nil)
	require.NoError(t, err)

	assert.Equal(t, monthTTL, tok.ExpiresAt.Sub(tok.IssuedAt))
	assert.Equal(t, fixed.Truncate(time.Second), tok.IssuedAt)

	claims, err := j.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, tok.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, tok.IssuedAt.Unix(), claims.IssuedAt.Unix())
}

func TestJWT_Issue_UniqueTokenIDs(t *testing.T) {
	j := newTestJWT(t)

	first, err := j.Issue("user", []string{"Normal"})
	require.NoError(t, err)
	second, err := j.Issue("user", []string{"Normal"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Value, second.Value)
}

func TestJWT_Issue_EmptyRoles(t *testing.T) {
	j := newTestJWT(t)

	tok, err := j.Issue("anonymous", []string{})
	require.NoError(t, err)

	claims, err := j.Parse(tok.Value)
	require.NoError(t, err)
	assert.Empty(t, claims.Roles)
}

func TestJWT_Parse_WrongKey(t *testing.T) {
	j := newTestJWT(t)
	other, err := NewJWT("other-secret", "vetquestions", "vetquestions-web", monthTTL)
	require.NoError(t, err)

	tok, err := j.Issue("user", []string{"Normal"})
	require.NoError(t, err)

	_, err = other.Parse(tok.Value)
	require.Error(t, err)
}

func TestJWT_Parse_WrongAudience(t *testing.T) {
	j := newTestJWT(t)
	other, err := NewJWT("secret", "vetquestions", "someone-else", monthTTL)
	require.NoError(t, err)

	tok, err := j.Issue("user", nil)
	require.NoError(t, err)

	_, err = other.Parse(tok.Value)
	require.Error(t, err)
}

func TestJWT_Parse_Expired(t *testing.T) {
	j := newTestJWT(t)
	issued := time.Now().Add(-2 * monthTTL)
	j.now = func() time.Time { return issued }

	tok, err := j.Issue("user", nil)
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.Parse(tok.Value)
	require.Error(t, err)
}
