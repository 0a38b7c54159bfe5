// Package observability provides hooks for logging and instrumentation.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific logging or metrics backends. Consumers register hooks at startup
// to receive events about scene mutations, adapter lifecycles and exports.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the scene package free of any logging framework
//   - Allows different backends (charm log, test recorders, metrics)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scene().OnBlockAdded(id, x, y)
//
// Scene hooks run synchronously inside the input callback that caused them,
// so implementations must be cheap and must not call back into the scene.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from scene mutations. Block handles are passed
// in their string form so implementations do not need to import the scene.
type SceneHooks interface {
	// Block events
	OnBlockAdded(id string, x, y float64)
	OnBlockRemoved(id string)
	OnFocusChanged(focused int)

	// Link events
	OnLinkAdded(from string)
	OnLinkCompleted(from, to string)
	OnLinkRejected(from string)
	OnLinkRemoved(from, to string)

	// OnInputIgnored records text or a key that matched no binding.
	OnInputIgnored(input string)
}

// =============================================================================
// Adapter Hooks
// =============================================================================

// AdapterHooks receives lifecycle events from the platform adapters
// (window, terminal, script player).
type AdapterHooks interface {
	OnAdapterStart(ctx context.Context, adapter string)
	OnAdapterStop(ctx context.Context, adapter string, frames int, duration time.Duration, err error)
	OnConfigReload(ctx context.Context, path string, err error)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export sinks.
type ExportHooks interface {
	OnExportStart(ctx context.Context, formats []string)
	OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnBlockAdded(string, float64, float64) {}
func (NoopSceneHooks) OnBlockRemoved(string)                 {}
func (NoopSceneHooks) OnFocusChanged(int)                    {}
func (NoopSceneHooks) OnLinkAdded(string)                    {}
func (NoopSceneHooks) OnLinkCompleted(string, string)        {}
func (NoopSceneHooks) OnLinkRejected(string)                 {}
func (NoopSceneHooks) OnLinkRemoved(string, string)          {}
func (NoopSceneHooks) OnInputIgnored(string)                 {}

// NoopAdapterHooks is a no-op implementation of AdapterHooks.
type NoopAdapterHooks struct{}

func (NoopAdapterHooks) OnAdapterStart(context.Context, string) {}
func (NoopAdapterHooks) OnAdapterStop(context.Context, string, int, time.Duration, error) {
}
func (NoopAdapterHooks) OnConfigReload(context.Context, string, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, []string)                          {}
func (NoopExportHooks) OnExportComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sceneHooks   SceneHooks   = NoopSceneHooks{}
	adapterHooks AdapterHooks = NoopAdapterHooks{}
	exportHooks  ExportHooks  = NoopExportHooks{}
	hooksMu      sync.RWMutex
)

// SetSceneHooks registers custom scene hooks.
// This should be called once at application startup before any scene is created.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
	}
}

// SetAdapterHooks registers custom adapter hooks.
func SetAdapterHooks(h AdapterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		adapterHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
}

// Adapter returns the registered adapter hooks.
func Adapter() AdapterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return adapterHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sceneHooks = NoopSceneHooks{}
	adapterHooks = NoopAdapterHooks{}
	exportHooks = NoopExportHooks{}
}
