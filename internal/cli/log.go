package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timer logs completion of an operation with its elapsed time.
type timer struct {
	logger *log.Logger
	start  time.Time
}

func newTimer(l *log.Logger) *timer {
	return &timer{logger: l, start: time.Now()}
}

// elapsed returns the time since the timer started.
func (t *timer) elapsed() time.Duration {
	return time.Since(t.start)
}

// done logs msg with the elapsed time, e.g. "Solved (12ms)".
func (t *timer) done(msg string, keyvals ...any) {
	t.logger.Info(msg, append(keyvals, "took", t.elapsed().Round(time.Millisecond))...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger in ctx, or log.Default() if there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
