package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks implements the observability hooks on top of a charm logger.
// Scene events are logged at debug level, lifecycle events at info.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

// =============================================================================
// Scene Hooks
// =============================================================================

func (h *logHooks) OnBlockAdded(id string, x, y float64) {
	h.logger.Debug("block added", "id", shortID(id), "x", x, "y", y)
}

func (h *logHooks) OnBlockRemoved(id string) {
	h.logger.Debug("block removed", "id", shortID(id))
}

func (h *logHooks) OnFocusChanged(focused int) {
	h.logger.Debug("focus changed", "focused", focused)
}

func (h *logHooks) OnLinkAdded(from string) {
	h.logger.Debug("link started", "from", shortID(from))
}

func (h *logHooks) OnLinkCompleted(from, to string) {
	h.logger.Debug("link completed", "from", shortID(from), "to", shortID(to))
}

func (h *logHooks) OnLinkRejected(from string) {
	h.logger.Debug("link target rejected", "from", shortID(from))
}

func (h *logHooks) OnLinkRemoved(from, to string) {
	if to == "" {
		h.logger.Debug("pending link removed", "from", shortID(from))
		return
	}
	h.logger.Debug("link removed", "from", shortID(from), "to", shortID(to))
}

func (h *logHooks) OnInputIgnored(input string) {
	h.logger.Debug("unbound input", "input", input)
}

// =============================================================================
// Adapter Hooks
// =============================================================================

func (h *logHooks) OnAdapterStart(_ context.Context, adapter string) {
	h.logger.Info("starting", "adapter", adapter)
}

func (h *logHooks) OnAdapterStop(_ context.Context, adapter string, frames int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("stopped", "adapter", adapter, "frames", frames, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Info("stopped", "adapter", adapter, "frames", frames, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnConfigReload(_ context.Context, path string, err error) {
	if err != nil {
		h.logger.Warn("config reload failed, keeping previous", "file", path, "err", err)
		return
	}
	h.logger.Info("config reloaded", "file", path)
}

// =============================================================================
// Export Hooks
// =============================================================================

func (h *logHooks) OnExportStart(_ context.Context, formats []string) {
	h.logger.Debug("exporting", "formats", strings.Join(formats, ","))
}

func (h *logHooks) OnExportComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("export failed", "formats", strings.Join(formats, ","), "err", err)
		return
	}
	h.logger.Debug("exported", "formats", strings.Join(formats, ","), "duration", d.Round(time.Millisecond))
}

// shortID trims a block handle to its first group for readable logs.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
