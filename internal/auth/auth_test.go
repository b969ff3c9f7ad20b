package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kegama-backend/internal/config"
)

func TestHashAndVerifyPIN(t *testing.T) {
	hash, err := HashPIN("12345")
	require.NoError(t, err)
	assert.NotEqual(t, "12345", hash)

	assert.True(t, VerifyPIN(hash, "12345"))
	assert.False(t, VerifyPIN(hash, "54321"))
	assert.False(t, VerifyPIN("", "12345"))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.ExpirationHours = 12
	cfg.Session.Issuer = "kegama-backend"
	return cfg
}

func TestSessionTokenRoundTrip(t *testing.T) {
	sm := NewSessionManager(testConfig())

	token, err := sm.GenerateToken(false)
	require.NoError(t, err)

	claims, err := sm.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Manager)
	assert.False(t, claims.Owner)
	assert.Equal(t, "kegama-backend", claims.Issuer)

	ownerToken, err := sm.GenerateToken(true)
	require.NoError(t, err)
	ownerClaims, err := sm.ValidateToken(ownerToken)
	require.NoError(t, err)
	assert.True(t, ownerClaims.Owner)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	sm := NewSessionManager(testConfig())
	token, err := sm.GenerateToken(false)
	require.NoError(t, err)

	other := testConfig()
	other.Session.Secret = "different"
	_, err = NewSessionManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestGuestCookieSignVerify(t *testing.T) {
	signer := NewGuestCookieSigner("secret")

	value := signer.Sign("abc-123")
	id, err := signer.Verify(value)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	_, err = signer.Verify("abc-123.deadbeef")
	assert.ErrorIs(t, err, ErrBadGuestCookie)
	_, err = signer.Verify("no-signature")
	assert.ErrorIs(t, err, ErrBadGuestCookie)

	// a different secret cannot mint valid values
	forged := NewGuestCookieSigner("other").Sign("abc-123")
	_, err = signer.Verify(forged)
	assert.ErrorIs(t, err, ErrBadGuestCookie)
}

func TestGuestCookieHTTPRoundTrip(t *testing.T) {
	signer := NewGuestCookieSigner("secret")

	rec := httptest.NewRecorder()
	signer.SetCookie(rec, "guest-1")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, GuestCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	id, err := signer.ReadCookie(req)
	require.NoError(t, err)
	assert.Equal(t, "guest-1", id)
}
