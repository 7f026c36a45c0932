package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	before time.Time
	calls  int
	n      int64
	err    error
}

func (f *fakePurger) Purge(ctx context.Context, before time.Time) (int64, error) {
	f.calls++
	f.before = before
	return f.n, f.err
}

func TestPurgeExpiredAudit(t *testing.T) {
	now := time.Date(2026, 6, 1, 3, 0, 0, 0, time.UTC)

	t.Run("uses retention window", func(t *testing.T) {
		p := &fakePurger{n: 12}
		jobs := NewJobService(p, 90, zerolog.Nop())
		jobs.now = func() time.Time { return now }

		require.NoError(t, jobs.PurgeExpiredAudit(context.Background()))
		assert.Equal(t, 1, p.calls)
		assert.Equal(t, now.AddDate(0, 0, -90), p.before)
	})

	t.Run("zero retention keeps everything", func(t *testing.T) {
		p := &fakePurger{}
		jobs := NewJobService(p, 0, zerolog.Nop())

		require.NoError(t, jobs.PurgeExpiredAudit(context.Background()))
		assert.Zero(t, p.calls)
	})

	t.Run("wraps purge errors", func(t *testing.T) {
		boom := errors.New("connection reset")
		jobs := NewJobService(&fakePurger{err: boom}, 30, zerolog.Nop())

		err := jobs.PurgeExpiredAudit(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestJobService_Start(t *testing.T) {
	jobs := NewJobService(&fakePurger{}, 30, zerolog.Nop())

	_, err := jobs.Start("not a schedule")
	assert.Error(t, err)

	c, err := jobs.Start("@daily")
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}

func TestAuditService_NilIsNoop(t *testing.T) {
	var audit *AuditService
	ctx := context.Background()

	assert.NoError(t, audit.Record(ctx, "cars", 1, "delete", "admin", nil))
	entries, err := audit.Recent(ctx, "", 10)
	assert.NoError(t, err)
	assert.Empty(t, entries)
	n, err := audit.Purge(ctx, time.Now())
	assert.NoError(t, err)
	assert.Zero(t, n)
}
