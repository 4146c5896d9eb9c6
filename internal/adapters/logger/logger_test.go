package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"listing-service/internal/core/port"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	mu     sync.Mutex
	tags   []string
	posted []map[string]interface{}
	closed bool
}

func (f *fakePoster) Post(tag string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posted = append(f.posted, map[string]interface{}(message.(port.Fields)))
	return nil
}

func (f *fakePoster) Close() error {
	f.closed = true
	return nil
}

func TestSlogAdapter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelInfo, IsJSON: true})

	log.WithFields(port.Fields{"trace_id": "abc"}).Error("relay failed", errors.New("boom"), port.Fields{"status": 502})
	log.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "relay failed", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "abc", entry["trace_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.EqualValues(t, 502, entry["status"])
}

func TestFluentLoggerAdapter_LevelsAndFields(t *testing.T) {
	poster := &fakePoster{}
	log, err := NewFluentLoggerAdapter(poster, slog.LevelWarn)
	require.NoError(t, err)

	child := log.WithFields(port.Fields{"component": "relay"})
	child.Info("skipped", nil)
	child.Warn("slow relay", port.Fields{"ms": 900})
	child.Error("relay failed", errors.New("boom"), nil)

	require.Equal(t, []string{"warn", "error"}, poster.tags)
	assert.Equal(t, "relay", poster.posted[0]["component"])
	assert.Equal(t, "slow relay", poster.posted[0]["message"])
	assert.Equal(t, "boom", poster.posted[1]["error"])

	require.NoError(t, log.Close())
	assert.True(t, poster.closed)
}

func TestNewFluentLoggerAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLoggerAdapter(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	require.Error(t, err)

	a, b := &fakePoster{}, &fakePoster{}
	la, _ := NewFluentLoggerAdapter(a, slog.LevelDebug)
	lb, _ := NewFluentLoggerAdapter(b, slog.LevelDebug)

	multi, err := NewMultiloggerAdapter(la, lb)
	require.NoError(t, err)
	multi.WithFields(port.Fields{"k": "v"}).Debug("hello", nil)

	require.Len(t, a.posted, 1)
	require.Len(t, b.posted, 1)
	assert.Equal(t, "v", b.posted[0]["k"])

	single, err := NewMultiloggerAdapter(la, nil)
	require.NoError(t, err)
	assert.Same(t, la, single)
}
