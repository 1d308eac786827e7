package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/pipeline"
)

// newLogger returns the CLI logger. Timestamps read "14:32:01.45"; at debug
// level the caller is reported too.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level <= log.DebugLevel,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond, and any
// extra key-value pairs.
func (p *progress) done(msg string, kv ...any) {
	kv = append([]any{"took", time.Since(p.start).Round(time.Millisecond)}, kv...)
	p.logger.Info(msg, kv...)
}

// logStats writes the counts and per-stage timings of a run at debug level.
// Stages that did not run are left out.
func logStats(l *log.Logger, s pipeline.Stats) {
	kv := []any{
		"rows", s.Rows,
		"people", s.People,
		"edges", s.Edges,
		"dangling", s.Dangling,
		"defects", s.Defects,
	}
	for _, st := range []struct {
		name string
		d    time.Duration
	}{
		{"fetch", s.FetchTime},
		{"build", s.BuildTime},
		{"layout", s.LayoutTime},
		{"render", s.RenderTime},
	} {
		if st.d > 0 {
			kv = append(kv, st.name, st.d.Round(time.Microsecond))
		}
	}
	if s.LayoutTime > 0 {
		kv = append(kv, "crossings", s.Crossings)
	}
	l.Debug("pipeline stats", kv...)
}
