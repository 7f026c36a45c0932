package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fleetadmin/internal/models"
)

type Routes struct {
	List   Route
	Get    Route
	Create Route
	Update Route
	Delete Route
}

// Messages overrides the generated fallback messages; empty fields keep
// the defaults built from the resource name.
type Messages struct {
	ListFailed, ListError     string
	GetFailed, GetError       string
	CreateFailed, CreateError string
	UpdateFailed, UpdateError string
	DeleteFailed, DeleteError string
	Deleted                   string
}

type ResourceConfig struct {
	Name   string
	Plural string
	Routes Routes

	// CheckStatusCode also requires statusCode == 200 inside a list envelope.
	CheckStatusCode bool
	// StrictDelete treats a 2xx delete with success:false as a rejection.
	// Off by default: several delete routes answer 2xx with no usable body.
	StrictDelete bool

	Messages Messages
}

func (cfg ResourceConfig) messages() Messages {
	m := cfg.Messages
	def := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	def(&m.ListFailed, "Failed to fetch "+cfg.Plural)
	def(&m.ListError, "An error occurred while fetching "+cfg.Plural)
	def(&m.GetFailed, "Failed to fetch "+cfg.Name)
	def(&m.GetError, "An error occurred while fetching "+cfg.Name)
	def(&m.CreateFailed, "Failed to add "+cfg.Name)
	def(&m.CreateError, "An error occurred while adding "+cfg.Name)
	def(&m.UpdateFailed, "Failed to update "+cfg.Name)
	def(&m.UpdateError, "An error occurred while updating "+cfg.Name)
	def(&m.DeleteFailed, "Failed to delete "+cfg.Name)
	def(&m.DeleteError, "An error occurred while deleting "+cfg.Name)
	def(&m.Deleted, capitalize(cfg.Name)+" deleted successfully")
	return m
}

// Resource is the CRUD contract for one backend entity family.
type Resource[T any] struct {
	client *Client
	cfg    ResourceConfig
	msg    Messages
}

func NewResource[T any](client *Client, cfg ResourceConfig) *Resource[T] {
	return &Resource[T]{client: client, cfg: cfg, msg: cfg.messages()}
}

func (r *Resource[T]) Config() ResourceConfig {
	return r.cfg
}

func (r *Resource[T]) List(ctx context.Context) models.Outcome[[]T] {
	route := r.cfg.Routes.List
	return Invoke[[]T](ctx, r.client, Call{
		Resource:        r.cfg.Plural,
		Op:              "list",
		Route:           route,
		Path:            route.Path,
		Failed:          r.msg.ListFailed,
		Error:           r.msg.ListError,
		RequireData:     true,
		CheckStatusCode: r.cfg.CheckStatusCode,
	})
}

func (r *Resource[T]) Get(ctx context.Context, id int64) models.Outcome[T] {
	route := r.cfg.Routes.Get
	return Invoke[T](ctx, r.client, Call{
		Resource:    r.cfg.Plural,
		Op:          "get",
		Route:       route,
		Path:        route.WithID(id),
		Failed:      r.msg.GetFailed,
		Error:       r.msg.GetError,
		RequireData: true,
	})
}

// Create posts payload as-is; asset URLs must already be merged into it.
func (r *Resource[T]) Create(ctx context.Context, payload any) models.Outcome[T] {
	route := r.cfg.Routes.Create
	return Invoke[T](ctx, r.client, Call{
		Resource: r.cfg.Plural,
		Op:       "create",
		Route:    route,
		Path:     route.Path,
		Payload:  payload,
		Failed:   r.msg.CreateFailed,
		Error:    r.msg.CreateError,
	})
}

// Update sends a partial field set; the backend merges it into record id.
func (r *Resource[T]) Update(ctx context.Context, id int64, partial any) models.Outcome[T] {
	route := r.cfg.Routes.Update
	return Invoke[T](ctx, r.client, Call{
		Resource: r.cfg.Plural,
		Op:       "update",
		Route:    route,
		Path:     route.WithID(id),
		Payload:  partial,
		Failed:   r.msg.UpdateFailed,
		Error:    r.msg.UpdateError,
	})
}

// Delete succeeds on any 2xx answer whatever the body holds, unless the
// resource opts into StrictDelete.
func (r *Resource[T]) Delete(ctx context.Context, id int64) models.Outcome[struct{}] {
	route := r.cfg.Routes.Delete
	if !route.Defined() {
		return models.Fail[struct{}](models.KindUnsupported, unsupportedMessage("delete", r.cfg.Plural))
	}

	log := r.client.logger.With().Str("resource", r.cfg.Plural).Str("op", "delete").Int64("id", id).Logger()

	resp, err := r.client.do(ctx, route, route.WithID(id), nil)
	if errors.Is(err, ErrNoToken) {
		return models.Fail[struct{}](models.KindNoToken, NoTokenMessage)
	}
	if err != nil {
		log.Error().Err(err).Msg("Backend request failed")
		return models.Fail[struct{}](models.KindTransport, r.msg.DeleteError)
	}

	env := resp.env
	if resp.ok() {
		if r.cfg.StrictDelete && env != nil && !env.Success {
			log.Warn().Str("message", env.Message).Msg("Backend rejected delete")
			return models.Fail[struct{}](models.KindBackendRejected, orDefault(env.Message, r.msg.DeleteFailed))
		}
		msg := r.msg.Deleted
		if env != nil && env.Message != "" {
			msg = env.Message
		}
		log.Debug().Msg("Deleted")
		return models.Succeed(struct{}{}, msg)
	}

	if env != nil && !env.Success {
		log.Warn().Int("status", resp.status).Str("message", env.Message).Msg("Backend rejected delete")
		return models.Fail[struct{}](models.KindBackendRejected, orDefault(env.Message, r.msg.DeleteFailed))
	}
	log.Error().Int("status", resp.status).Msg("Delete failed")
	return models.Fail[struct{}](models.KindTransport, r.msg.DeleteError)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func newRoute(method, path string, auth AuthStyle) Route {
	return Route{Method: method, Path: path, Auth: auth}
}

func get(path string, auth AuthStyle) Route {
	return newRoute(http.MethodGet, path, auth)
}

func post(path string, auth AuthStyle) Route {
	return newRoute(http.MethodPost, path, auth)
}

func put(path string, auth AuthStyle) Route {
	return newRoute(http.MethodPut, path, auth)
}

func remove(path string, auth AuthStyle) Route {
	return newRoute(http.MethodDelete, path, auth)
}
