package virtual

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the default logger for virtualizers created afterwards
// without WithLogger. By default nothing is logged. Pass nil to restore the
// silent default.
//
// Levels used:
//   - [slog.LevelDebug]: attach/detach, recomputed windows, committed sizes
//   - [slog.LevelWarn]: dropped measurement reports
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the current default logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
