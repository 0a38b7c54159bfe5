package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Played 3 events")

	if !strings.Contains(buf.String(), "Played 3 events (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext should fall back to a default logger")
	}
}

func TestLogHooks(t *testing.T) {
	const id = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	tests := []struct {
		name  string
		emit  func(h *logHooks)
		level log.Level
		want  []string
	}{
		{"block added", func(h *logHooks) { h.OnBlockAdded(id, 10, 20) }, log.DebugLevel, []string{"block added", "id=6ba7b810", "x=10", "y=20"}},
		{"block hidden at info", func(h *logHooks) { h.OnBlockAdded(id, 10, 20) }, log.InfoLevel, nil},
		{"link completed", func(h *logHooks) { h.OnLinkCompleted(id, "b-1") }, log.DebugLevel, []string{"link completed", "from=6ba7b810", "to=b"}},
		{"pending link removed", func(h *logHooks) { h.OnLinkRemoved(id, "") }, log.DebugLevel, []string{"pending link removed"}},
		{"unbound input", func(h *logHooks) { h.OnInputIgnored("z") }, log.DebugLevel, []string{"unbound input", "input=z"}},
		{"adapter stop", func(h *logHooks) {
			h.OnAdapterStop(context.Background(), "tui", 42, time.Second, nil)
		}, log.InfoLevel, []string{"stopped", "adapter=tui", "frames=42"}},
		{"reload failure", func(h *logHooks) {
			h.OnConfigReload(context.Background(), "c.toml", errors.New("boom"))
		}, log.InfoLevel, []string{"config reload failed", "boom"}},
		{"export failure", func(h *logHooks) {
			h.OnExportComplete(context.Background(), []string{"svg", "png"}, 0, errors.New("disk full"))
		}, log.InfoLevel, []string{"export failed", "svg,png", "disk full"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogHooks(newLogger(&buf, tt.level)))

			if tt.want == nil {
				if buf.Len() != 0 {
					t.Errorf("unexpected output %q", buf.String())
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q missing %q", buf.String(), w)
				}
			}
		})
	}
}

func TestShortID(t *testing.T) {
	tests := map[string]string{
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8": "6ba7b810",
		"plain":                                "plain",
		"-leading":                             "-leading",
		"":                                     "",
	}
	for in, want := range tests {
		if got := shortID(in); got != want {
			t.Errorf("shortID(%q) = %q, want %q", in, got, want)
		}
	}
}
