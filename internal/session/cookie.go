package session

import (
	"net/http"
	"strings"
	"time"
)

// CookieStore is bound to one HTTP exchange: it reads the token from the
// request cookie, or failing that its Authorization header, and writes
// Set-Cookie headers on the response.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	// written records a Set or Clear made during this exchange so later
	// reads observe it before the browser does.
	written *string
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{w: w, r: r, secure: secure}
}

func (s *CookieStore) Get() (string, bool) {
	if s.written != nil {
		return *s.written, *s.written != ""
	}
	if c, err := s.r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	// API clients without a cookie jar send the token as a bearer header.
	if token, ok := strings.CutPrefix(s.r.Header.Get("Authorization"), "Bearer "); ok {
		token = strings.TrimSpace(token)
		return token, token != ""
	}
	return "", false
}

func (s *CookieStore) Set(token string, ttl time.Duration) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	s.written = &token
	return nil
}

func (s *CookieStore) Clear() error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	empty := ""
	s.written = &empty
	return nil
}
