package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))

	body, err := json.Marshal(Event{
		ID:         "e1",
		Kind:       KindUserBlock,
		AdminID:    1,
		AdminEmail: "root@example.com",
		Target:     "user:42",
		At:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, LogHandler(log)(context.Background(), body))
	out := buf.String()
	assert.Contains(t, out, "kind=user.block")
	assert.Contains(t, out, "target=user:42")
	assert.Contains(t, out, "admin=root@example.com")
}

func TestLogHandler_MalformedIsDropped(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))

	assert.NoError(t, LogHandler(log)(context.Background(), []byte("{")))
	assert.Contains(t, buf.String(), "malformed audit event dropped")
}
