package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger(level, format)
	fn()
	return buf.String()
}

func TestLogger_TextFormat(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info",
			level:    "info",
			logFn:    func() { Info("probing backends") },
			contains: []string{"probing backends", "level=INFO"},
		},
		{
			name:     "debug suppressed at info",
			level:    "info",
			logFn:    func() { Debug("dialing redis") },
			excludes: []string{"dialing redis"},
		},
		{
			name:     "debug with fields",
			level:    "debug",
			logFn:    func() { Debug("dialing redis", Fields{"addr": "127.0.0.1:6379"}) },
			contains: []string{"dialing redis", "addr=127.0.0.1:6379", "level=DEBUG"},
		},
		{
			name:     "warn with fields",
			level:    "warning",
			logFn:    func() { Warn("hook failed", Fields{"script": "post.tengo"}) },
			contains: []string{"hook failed", "script=post.tengo", "level=WARN"},
		},
		{
			name:     "success",
			level:    "info",
			logFn:    func() { Success("purge finished") },
			contains: []string{"purge finished", "status=success"},
		},
		{
			name:     "error only at error level",
			level:    "error",
			logFn:    func() { Warn("purge failed"); Error("probe panicked", Fields{"backend": "redis"}) },
			contains: []string{"probe panicked", "backend=redis", "level=ERROR"},
			excludes: []string{"purge failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	out := captureOutput(t, "info", FormatJSON, func() {
		Info("cleared directory", Fields{"dir": "./cache", "count": 3, "recursive": true})
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "cleared directory", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "./cache", entry["dir"])
	assert.EqualValues(t, 3, entry["count"])
	assert.Equal(t, true, entry["recursive"])
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	logger = nil
	assert.NotPanics(t, func() {
		assert.NotNil(t, GetLogger())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestMergeFields_LaterWins(t *testing.T) {
	attrs := mergeFields(Fields{"key": "a"}, Fields{"key": "b", "n": 1})
	got := map[string]interface{}{}
	for i := 0; i < len(attrs); i += 2 {
		got[attrs[i].(string)] = attrs[i+1]
	}
	assert.Equal(t, map[string]interface{}{"key": "b", "n": 1}, got)
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestActionLog_Record(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newActionLog(nopCloser{buf})

	log.Record("file", "file:./cache", true, 3, "Cleared 3 items from ./cache")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "purge", entry["msg"])
	assert.Equal(t, "file", entry["backend"])
	assert.Equal(t, "file:./cache", entry["target"])
	assert.Equal(t, true, entry["success"])
	assert.EqualValues(t, 3, entry["count"])
	require.NoError(t, log.Close())
}

func TestActionLog_NilIsNoop(t *testing.T) {
	var log *ActionLog
	assert.NotPanics(t, func() {
		log.Record("redis", "redis", false, 0, "")
		assert.NoError(t, log.Close())
	})
}

func TestNewActionLog_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")
	log := NewActionLog(path, Rotation{MaxSize: 1})
	log.Record("redis", "redis", true, 0, "Redis cleared successfully")
	require.NoError(t, log.Close())
	assert.FileExists(t, path)
}
