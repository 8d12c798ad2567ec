// Package session holds the durable client-side stores the session token
// is written to: browser cookies for the web frontend and a file under the
// home directory for the terminal client.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieOptions configures the cookies written by a CookieStore.
type CookieOptions struct {
	Secure bool
	// MaxAge applies when the value is not a JWT with an exp claim.
	MaxAge time.Duration
}

// CookieStore keeps values in HttpOnly cookies. It is bound to one request:
// reads see the request's cookies plus anything set while handling it.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	opts    CookieOptions
	written map[string]string
	now     func() time.Time
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStore {
	return &CookieStore{w: w, r: r, opts: opts, written: map[string]string{}, now: time.Now}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		return v, v != ""
	}
	c, err := s.r.Cookie(key)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(key, value string) error {
	maxAge := s.opts.MaxAge
	if lifetime, ok := jwtLifetime(value, s.now()); ok {
		maxAge = lifetime
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.written[key] = value
	return nil
}

// Clear expires the cookie immediately.
func (s *CookieStore) Clear(key string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.written[key] = ""
}

// jwtLifetime reads the exp claim of token without verifying it; the
// frontend does not hold the signing key and treats the token as opaque
// otherwise. ok is false for anything that is not a JWT with a future exp.
func jwtLifetime(token string, now time.Time) (time.Duration, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	lifetime := exp.Sub(now)
	if lifetime <= 0 {
		return 0, false
	}
	return lifetime, true
}
