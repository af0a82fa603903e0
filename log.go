package sqlalias

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var logOutput atomic.Pointer[slog.Logger]

// SetLogger sets a global logger for debugging alias assignment. Nothing is logged by default.
//
// sqlalias.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	logOutput.Store(l)
}

func debugLog(msg string, args ...any) {
	if l := logOutput.Load(); l != nil {
		l.Log(context.Background(), slog.LevelDebug, msg, args...)
	}
}
