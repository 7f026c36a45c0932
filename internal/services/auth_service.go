package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/session"
)

const (
	loginFailedMessage = "Login failed"
	loginErrorMessage  = "An error occurred during login"
)

var loginRoute = post("/auth/loginAdmin", AuthNone)

type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges admin credentials for a token and stores it in the
// session. A failed login leaves any existing token untouched.
func (s *AuthService) Login(ctx context.Context, number, password string) models.LoginOutcome {
	log := s.client.logger.With().Str("op", "login").Logger()

	resp, err := s.client.do(ctx, loginRoute, loginRoute.Path, models.LoginRequest{Number: number, Password: password})
	if err != nil {
		log.Error().Err(err).Msg("Login request failed")
		return models.LoginOutcome{Message: loginErrorMessage}
	}

	env := resp.env
	if env == nil {
		log.Error().Int("status", resp.status).Msg("Undecodable login response")
		return models.LoginOutcome{Message: loginErrorMessage}
	}
	if !env.Success || env.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.status).Str("message", env.Message).Msg("Login rejected")
		return models.LoginOutcome{Message: orDefault(env.Message, loginFailedMessage)}
	}

	var data models.LoginData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.AccessToken == "" {
		log.Error().Err(err).Msg("Login envelope without token")
		return models.LoginOutcome{Message: loginErrorMessage}
	}

	if err := s.client.session.SetToken(data.AccessToken); err != nil {
		log.Error().Err(err).Msg("Storing access token")
		return models.LoginOutcome{Message: loginErrorMessage}
	}

	log.Info().Int64("user_id", userID(data.User)).Msg("Admin logged in")
	return models.LoginOutcome{Success: true, Message: env.Message, User: data.User}
}

func (s *AuthService) Logout() error {
	return s.client.session.ClearToken()
}

type AuthStatus struct {
	Authenticated bool       `json:"authenticated"`
	Subject       string     `json:"subject,omitempty"`
	Role          string     `json:"role,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// Status reports whether a usable token is held. Opaque tokens count as
// authenticated; JWTs whose exp has passed do not.
func (s *AuthService) Status(now time.Time) AuthStatus {
	token, ok := s.client.session.Token()
	if !ok {
		return AuthStatus{}
	}
	info, err := session.Inspect(token, now)
	if err != nil {
		return AuthStatus{Authenticated: true}
	}
	return AuthStatus{
		Authenticated: !info.Expired,
		Subject:       info.Subject,
		Role:          info.Role,
		ExpiresAt:     info.ExpiresAt,
	}
}

func userID(u *models.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
