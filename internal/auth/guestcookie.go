package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"
)

// GuestCookieName identifies a returning self-registration guest so the
// form can show their pending submission instead of a blank form.
const GuestCookieName = "kegama_guest_id"

// GuestCookieMaxAge is how long the browser remembers the guest.
const GuestCookieMaxAge = 90 * 24 * time.Hour

var ErrBadGuestCookie = errors.New("invalid guest cookie")

// GuestCookieSigner signs guest IDs into tamper-evident cookie values of the
// form "<id>.<hex hmac>".
type GuestCookieSigner struct {
	secret []byte
}

func NewGuestCookieSigner(secret string) *GuestCookieSigner {
	return &GuestCookieSigner{secret: []byte(secret)}
}

// Sign produces the cookie value for a guest ID.
func (s *GuestCookieSigner) Sign(guestID string) string {
	return guestID + "." + s.mac(guestID)
}

// Verify extracts the guest ID from a cookie value, rejecting bad signatures.
func (s *GuestCookieSigner) Verify(value string) (string, error) {
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 {
		return "", ErrBadGuestCookie
	}
	id, sig := value[:idx], value[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(s.mac(id))) {
		return "", ErrBadGuestCookie
	}
	return id, nil
}

// SetCookie writes the signed guest cookie on the response.
func (s *GuestCookieSigner) SetCookie(w http.ResponseWriter, guestID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     GuestCookieName,
		Value:    s.Sign(guestID),
		Path:     "/",
		MaxAge:   int(GuestCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie returns the verified guest ID from the request, or an error if
// the cookie is absent or forged.
func (s *GuestCookieSigner) ReadCookie(r *http.Request) (string, error) {
	c, err := r.Cookie(GuestCookieName)
	if err != nil {
		return "", err
	}
	return s.Verify(c.Value)
}

func (s *GuestCookieSigner) mac(id string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}
