package logger

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation mirrors the lumberjack knobs exposed in the configuration.
type Rotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// ActionLog records purge actions as JSON lines in a rotating file.
type ActionLog struct {
	out    io.WriteCloser
	logger *slog.Logger
}

// NewActionLog opens (lazily, on first write) a rotating log at path.
func NewActionLog(path string, rotation Rotation) *ActionLog {
	return newActionLog(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotation.MaxSize,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAge,
		Compress:   rotation.Compress,
	})
}

func newActionLog(w io.WriteCloser) *ActionLog {
	return &ActionLog{
		out:    w,
		logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

// Record writes one purge action.
func (a *ActionLog) Record(backend, target string, success bool, count int, detail string) {
	if a == nil {
		return
	}
	a.logger.Info("purge",
		"backend", backend,
		"target", target,
		"success", success,
		"count", count,
		"detail", detail,
	)
}

// Close flushes and closes the underlying file.
func (a *ActionLog) Close() error {
	if a == nil {
		return nil
	}
	return a.out.Close()
}
