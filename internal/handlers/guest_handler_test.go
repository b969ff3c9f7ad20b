package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kegama-backend/internal/auth"
	"kegama-backend/internal/models"
	"kegama-backend/internal/services"
)

type fakeRegistrar struct {
	registerErr error
	registered  *models.GuestRegistration
	pending     *models.GuestRegistration
	pendingErr  error
	accessErr   error
}

func (f *fakeRegistrar) Register(ctx context.Context, req *models.RegisterRequest) (*models.GuestRegistration, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registered, nil
}

func (f *fakeRegistrar) PendingStatus(ctx context.Context, guestID string) (*models.GuestRegistration, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	return f.pending, nil
}

func (f *fakeRegistrar) CheckAccessCode(ctx context.Context, code string) error {
	return f.accessErr
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterHoneypotRejected(t *testing.T) {
	h := NewGuestHandler(&fakeRegistrar{registerErr: services.ErrHoneypot}, auth.NewGuestCookieSigner("secret"))

	rec := postJSON(t, h.Register, "/api/guest/register", map[string]string{"nickname": "bot"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid submission")
	assert.Empty(t, rec.Result().Cookies())
}

func TestRegisterMaintenanceMode(t *testing.T) {
	h := NewGuestHandler(&fakeRegistrar{registerErr: services.ErrMaintenanceMode}, auth.NewGuestCookieSigner("secret"))

	rec := postJSON(t, h.Register, "/api/guest/register", map[string]string{"first_name": "ANA"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	h := NewGuestHandler(&fakeRegistrar{
		registerErr: &services.ValidationError{Missing: []string{"last_name", "phone"}},
	}, auth.NewGuestCookieSigner("secret"))

	rec := postJSON(t, h.Register, "/api/guest/register", map[string]string{"first_name": "ANA"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"last_name", "phone"}, body.Missing)
}

func TestRegisterSuccessSetsGuestCookie(t *testing.T) {
	signer := auth.NewGuestCookieSigner("secret")
	h := NewGuestHandler(&fakeRegistrar{
		registered: &models.GuestRegistration{ID: "abc-123", Status: models.StatusPending},
	}, signer)

	rec := postJSON(t, h.Register, "/api/guest/register", map[string]string{
		"first_name": "ANA", "last_name": "REYES",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "abc-123", body["id"])
	assert.Equal(t, models.StatusPending, body["status"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.GuestCookieName, cookies[0].Name)

	id, err := signer.Verify(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
}

func TestStatusWithoutCookie(t *testing.T) {
	h := NewGuestHandler(&fakeRegistrar{}, auth.NewGuestCookieSigner("secret"))

	req := httptest.NewRequest(http.MethodGet, "/api/guest/status", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending":false`)
}

func TestStatusForgedCookie(t *testing.T) {
	h := NewGuestHandler(&fakeRegistrar{
		pending: &models.GuestRegistration{ID: "abc-123", Status: models.StatusPending},
	}, auth.NewGuestCookieSigner("secret"))

	req := httptest.NewRequest(http.MethodGet, "/api/guest/status", nil)
	req.AddCookie(&http.Cookie{Name: auth.GuestCookieName, Value: "abc-123.deadbeef"})
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending":false`)
}

func TestStatusGoneRegistration(t *testing.T) {
	signer := auth.NewGuestCookieSigner("secret")
	h := NewGuestHandler(&fakeRegistrar{pendingErr: pgx.ErrNoRows}, signer)

	req := httptest.NewRequest(http.MethodGet, "/api/guest/status", nil)
	req.AddCookie(&http.Cookie{Name: auth.GuestCookieName, Value: signer.Sign("abc-123")})
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending":false`)
}

func TestStatusPendingRegistration(t *testing.T) {
	signer := auth.NewGuestCookieSigner("secret")
	h := NewGuestHandler(&fakeRegistrar{
		pending: &models.GuestRegistration{ID: "abc-123", FirstName: "ANA", LastName: "REYES", Status: models.StatusPending},
	}, signer)

	req := httptest.NewRequest(http.MethodGet, "/api/guest/status", nil)
	req.AddCookie(&http.Cookie{Name: auth.GuestCookieName, Value: signer.Sign("abc-123")})
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pending   bool   `json:"pending"`
		FirstName string `json:"first_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Pending)
	assert.Equal(t, "ANA", body.FirstName)
}

func TestAccessCodeRejected(t *testing.T) {
	h := NewGuestHandler(&fakeRegistrar{accessErr: services.ErrBadAccessCode}, auth.NewGuestCookieSigner("secret"))

	rec := postJSON(t, h.AccessCode, "/api/guest/access-code", map[string]string{"code": "wrong"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAccessCodeAccepted(t *testing.T) {
	h := NewGuestHandler(&fakeRegistrar{}, auth.NewGuestCookieSigner("secret"))

	rec := postJSON(t, h.AccessCode, "/api/guest/access-code", map[string]string{"code": "1234"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authorized":true`)
}
