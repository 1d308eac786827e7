package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/pipeline"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	info := newLogger(&buf, log.InfoLevel)
	info.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line at info level: %q", buf.String())
	}
	info.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("info output = %q", buf.String())
	}

	buf.Reset()
	debug := newLogger(&buf, log.DebugLevel)
	debug.Debug("trace")
	if !strings.Contains(buf.String(), "trace") || !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("debug output = %q, want message and caller", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Loaded family", "people", 4)

	out := buf.String()
	for _, want := range []string{"Loaded family", "took=", "people=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q lacks %q", out, want)
		}
	}
}

func TestLogStats(t *testing.T) {
	var buf bytes.Buffer
	logStats(newLogger(&buf, log.InfoLevel), pipeline.Stats{Rows: 3})
	if buf.Len() != 0 {
		t.Error("stats logged at info level")
	}

	logStats(newLogger(&buf, log.DebugLevel), pipeline.Stats{Rows: 3, People: 2, FetchTime: time.Millisecond})
	out := buf.String()
	for _, want := range []string{"rows=3", "people=2", "fetch="} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output %q lacks %q", out, want)
		}
	}
	for _, skip := range []string{"layout=", "crossings="} {
		if strings.Contains(out, skip) {
			t.Errorf("stats output %q has %q for a stage that did not run", out, skip)
		}
	}
}
