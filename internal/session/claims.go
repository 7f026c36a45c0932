package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the console can tell about a token without the
// backend's signing key.
type TokenInfo struct {
	Subject   string     `json:"subject,omitempty"`
	Role      string     `json:"role,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired"`
}

// Inspect decodes the claims of a JWT bearer token. The signature is not
// verified; only the backend can do that.
func Inspect(token string, now time.Time) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if info.Subject == "" {
		if id, ok := claims["id"]; ok {
			info.Subject = fmt.Sprint(id)
		}
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
		info.Expired = !now.Before(t)
	}
	return info, nil
}
