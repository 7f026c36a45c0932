package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fleetadmin/internal/db"

	"github.com/rs/zerolog"
)

type AuditEntry struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId,omitempty"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor,omitempty"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuditService keeps a local trail of mutations the console made against
// the backend. A nil *AuditService records nothing.
type AuditService struct {
	db     *sql.DB
	driver string
	logger zerolog.Logger
}

func NewAuditService(conn *sql.DB, driver string, logger zerolog.Logger) *AuditService {
	return &AuditService{db: conn, driver: driver, logger: logger}
}

// Record stores one entry. details is marshaled to JSON when it is not
// already a string, and any password field is dropped from it at any depth.
func (s *AuditService) Record(ctx context.Context, entityType string, entityID int64, action, actor string, details any) error {
	if s == nil {
		return nil
	}

	var text string
	switch d := details.(type) {
	case nil:
	case string:
		text = scrubSecrets(d)
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("marshaling audit details: %w", err)
		}
		text = scrubSecrets(string(b))
	}

	query := db.Rebind(s.driver, `INSERT INTO audit_logs (entity_type, entity_id, action, actor, details, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, entityType, entityID, action, actor, text, time.Now().UTC()); err != nil {
		s.logger.Error().Err(err).Str("entity_type", entityType).Str("action", action).Msg("Writing audit entry")
		return fmt.Errorf("recording audit entry: %w", err)
	}
	return nil
}

// Recent lists the newest entries, optionally for one entity type.
func (s *AuditService) Recent(ctx context.Context, entityType string, limit int) ([]AuditEntry, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, entity_type, entity_id, action, actor, details, created_at FROM audit_logs`
	args := []any{}
	if entityType != "" {
		query += ` WHERE entity_type = ?`
		args = append(args, entityType)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, db.Rebind(s.driver, query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			e              AuditEntry
			entityID       sql.NullInt64
			actor, details sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.EntityType, &entityID, &e.Action, &actor, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.EntityID = entityID.Int64
		e.Actor = actor.String
		e.Details = details.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}
	return entries, nil
}

// Purge deletes entries created before the cutoff and reports how many.
func (s *AuditService) Purge(ctx context.Context, before time.Time) (int64, error) {
	if s == nil {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, db.Rebind(s.driver, `DELETE FROM audit_logs WHERE created_at < ?`), before.UTC())
	if err != nil {
		return 0, fmt.Errorf("purging audit entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Could not read purged row count")
		return 0, nil
	}
	return n, nil
}

// scrubSecrets removes password-like keys from JSON details. Text that is
// not a JSON object or array is stored as is.
func scrubSecrets(details string) string {
	var v any
	if err := json.Unmarshal([]byte(details), &v); err != nil {
		return details
	}
	switch v.(type) {
	case map[string]any, []any:
	default:
		return details
	}
	b, err := json.Marshal(scrub(v))
	if err != nil {
		return details
	}
	return string(b)
}

func scrub(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if strings.Contains(strings.ToLower(k), "password") {
				delete(t, k)
				continue
			}
			t[k] = scrub(val)
		}
	case []any:
		for i := range t {
			t[i] = scrub(t[i])
		}
	}
	return v
}
