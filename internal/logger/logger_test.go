package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "garbage defaults to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLogger(&bytes.Buffer{}, tt.level, true)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "info", true)
	l.Info().Str("resource", "cars").Msg("listed")

	assert.Contains(t, buf.String(), `"resource":"cars"`)
	assert.Contains(t, buf.String(), `"message":"listed"`)
}
