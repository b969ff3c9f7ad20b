package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kegama-backend/internal/services"
)

type fakeAuthenticator struct {
	token string
	owner bool
	err   error
}

func (f *fakeAuthenticator) Login(ctx context.Context, pin, ip string) (string, bool, error) {
	return f.token, f.owner, f.err
}

func TestLoginWrongPIN(t *testing.T) {
	h := NewAuthHandler(&fakeAuthenticator{err: services.ErrBadPIN})

	rec := postJSON(t, h.Login, "/api/admin/login", map[string]string{"pin": "00000"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect PIN")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginSuccess(t *testing.T) {
	h := NewAuthHandler(&fakeAuthenticator{token: "tok-123", owner: true})

	rec := postJSON(t, h.Login, "/api/admin/login", map[string]string{"pin": "12345"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
		Owner bool   `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tok-123", body.Token)
	assert.True(t, body.Owner)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.Equal(t, "tok-123", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginBadBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthenticator{token: "tok-123"})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
