package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrubSecrets(t *testing.T) {
	tests := []struct {
		name    string
		details string
		want    string
	}{
		{"top level", `{"name":"V","password":"hunter2"}`, `{"name":"V"}`},
		{"any case", `{"Password":"x","newPassword":"y","email":"a@b.c"}`, `{"email":"a@b.c"}`},
		{"nested", `{"user":{"password":"x","id":5},"list":[{"password":"y","n":1}]}`, `{"user":{"id":5},"list":[{"n":1}]}`},
		{"nothing to drop", `{"parkingid":3,"id":9}`, `{"parkingid":3,"id":9}`},
		{"plain text", `deleted by cron`, `deleted by cron`},
		{"json scalar", `"password"`, `"password"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scrubSecrets(tt.details)
			if tt.want[0] == '{' {
				assert.JSONEq(t, tt.want, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
