package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

func TestFormatDetails(t *testing.T) {
	assert.Equal(t, "", formatDetails(nil))
	assert.Equal(t, "error=boom phase=play title=Dawn", formatDetails(map[string]any{
		"title": "Dawn",
		"phase": "play",
		"error": "boom",
	}))
}

func TestPrintAuditLog(t *testing.T) {
	var buf bytes.Buffer
	printAuditLog(&buf, nil)
	assert.Contains(t, buf.String(), "No audit entries")

	buf.Reset()
	printAuditLog(&buf, []entities.AuditEntry{
		{
			Action:    "create_period",
			ElementID: "0b7f5e2c-9a31-4c1e-8f0d-3f1b2a6c7d8e",
			Details:   map[string]any{"title": "Dawn"},
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	})
	out := buf.String()
	assert.Contains(t, out, "create_period")
	assert.Contains(t, out, "0b7f5e2c")
	assert.NotContains(t, out, "9a31")
	assert.Contains(t, out, "title=Dawn")
}
