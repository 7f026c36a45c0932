package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fleetadmin/internal/models"
	"fleetadmin/internal/session"

	"github.com/rs/zerolog"
)

const NoTokenMessage = "No access token found"

var (
	ErrNoToken     = errors.New("no access token")
	ErrUnsupported = errors.New("operation not supported")
)

// AuthStyle selects how the bearer token is attached to a route. The rental
// backend is inconsistent here: some routes want the raw token with no
// "Bearer " prefix, and the parking list is public.
type AuthStyle int

const (
	AuthBearer AuthStyle = iota
	AuthRaw
	AuthNone
)

type Route struct {
	Method string
	// Path is relative to the backend base URL; "{id}" is substituted.
	Path string
	Auth AuthStyle
}

func (r Route) Defined() bool {
	return r.Path != ""
}

func (r Route) WithID(id int64) string {
	return strings.Replace(r.Path, "{id}", strconv.FormatInt(id, 10), 1)
}

// Client carries what every backend call shares: the base URL, the HTTP
// transport and the session the token is read from.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Manager
	logger  zerolog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, sess *session.Manager, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: sess,
		logger:  logger,
	}
}

func (c *Client) Session() *session.Manager {
	return c.session
}

type response struct {
	status int
	// env is nil when the body was not a decodable envelope.
	env *models.Envelope
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (c *Client) do(ctx context.Context, route Route, path string, payload any) (*response, error) {
	var token string
	if route.Auth != AuthNone {
		t, ok := c.session.Token()
		if !ok {
			return nil, ErrNoToken
		}
		token = t
	}

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	switch route.Auth {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+token)
	case AuthRaw:
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", route.Method, path, err)
	}
	defer resp.Body.Close()

	out := &response{status: resp.StatusCode}
	var env models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
		out.env = &env
	}
	return out, nil
}

// Call describes one backend request and how its envelope is judged.
type Call struct {
	Resource string
	Op       string
	Route    Route
	Path     string
	Payload  any

	// Failed is used when the backend rejects without a message, Error when
	// the request never produced a decodable envelope.
	Failed string
	Error  string

	RequireData     bool
	CheckStatusCode bool
}

// Invoke runs a call and folds every failure into an Outcome. It never
// returns an error and makes exactly one attempt.
func Invoke[T any](ctx context.Context, c *Client, call Call) models.Outcome[T] {
	log := c.logger.With().Str("resource", call.Resource).Str("op", call.Op).Logger()

	if !call.Route.Defined() {
		return models.Fail[T](models.KindUnsupported, unsupportedMessage(call.Op, call.Resource))
	}

	resp, err := c.do(ctx, call.Route, call.Path, call.Payload)
	if errors.Is(err, ErrNoToken) {
		return models.Fail[T](models.KindNoToken, NoTokenMessage)
	}
	if err != nil {
		log.Error().Err(err).Msg("Backend request failed")
		return models.Fail[T](models.KindTransport, call.Error)
	}

	env := resp.env
	if env == nil {
		log.Error().Int("status", resp.status).Msg("Undecodable backend response")
		return models.Fail[T](models.KindTransport, call.Error)
	}
	if !env.Success {
		log.Warn().Int("status", resp.status).Str("message", env.Message).Msg("Backend rejected request")
		return models.Fail[T](models.KindBackendRejected, orDefault(env.Message, call.Failed))
	}
	if !resp.ok() {
		log.Error().Int("status", resp.status).Msg("Success envelope on error status")
		return models.Fail[T](models.KindTransport, call.Error)
	}
	if call.CheckStatusCode && env.StatusCode != http.StatusOK {
		log.Warn().Int("status_code", env.StatusCode).Msg("Unexpected envelope status code")
		return models.Fail[T](models.KindBackendRejected, orDefault(env.Message, call.Failed))
	}
	if call.RequireData && !env.HasData() {
		log.Warn().Msg("Success envelope without data")
		return models.Fail[T](models.KindBackendRejected, call.Failed)
	}

	var data T
	if env.HasData() {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			log.Error().Err(err).Msg("Decoding backend data")
			return models.Fail[T](models.KindTransport, call.Error)
		}
	}

	log.Debug().Msg("Backend request succeeded")
	return models.Succeed(data, env.Message)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func unsupportedMessage(op, resource string) string {
	return fmt.Sprintf("%s is not supported for %s", op, resource)
}
