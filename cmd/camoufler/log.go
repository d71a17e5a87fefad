package main

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"camoufler/pkg/smudge"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timer logs the elapsed time of a stage at debug level.
type timer struct {
	logger *log.Logger
	start  time.Time
}

func newTimer(l *log.Logger) *timer {
	return &timer{logger: l, start: time.Now()}
}

func (t *timer) done(msg string) {
	t.logger.Debugf("%s (%s)", msg, time.Since(t.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// rowProgress returns an observer drawing a row progress bar on w. The bar
// is created on the first row since the height is unknown until decode.
func rowProgress(w io.Writer) smudge.Observer {
	var bar *progressbar.ProgressBar
	return func(row, rows int) {
		if bar == nil {
			bar = progressbar.NewOptions(rows,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetWidth(30),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("smudging rows"),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(row)
		if row == rows {
			_ = bar.Finish()
		}
	}
}
