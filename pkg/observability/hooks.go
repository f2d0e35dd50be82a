// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout runs, spacing evaluations, and rendering.
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
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetSpacingHooks(&mySpacingHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, rows, keys)
//	// ... place the array ...
//	observability.Layout().OnLayoutComplete(ctx, rows, keys, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout passes.
type LayoutHooks interface {
	// OnLayoutStart records the beginning of a full layout pass.
	OnLayoutStart(ctx context.Context, rows, keys int)

	// OnLayoutComplete records the end of a layout pass.
	OnLayoutComplete(ctx context.Context, rows, keys int, duration time.Duration, err error)

	// OnFallback records a degraded-but-continuing decision: an infeasible
	// angle step or a failed corner snap that layout recovered from.
	OnFallback(ctx context.Context, kind string, row, col int)
}

// =============================================================================
// Spacing Hooks
// =============================================================================

// SpacingHooks receives events from spacing evaluations.
type SpacingHooks interface {
	// OnEvaluateStart records the beginning of a pairwise evaluation.
	OnEvaluateStart(ctx context.Context, footprints int)

	// OnEvaluateComplete records the end of a pairwise evaluation.
	OnEvaluateComplete(ctx context.Context, pairs, interferences int, duration time.Duration)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from render operations.
type RenderHooks interface {
	// OnRenderStart records the beginning of a render.
	OnRenderStart(ctx context.Context, format string)

	// OnRenderComplete records the end of a render.
	OnRenderComplete(ctx context.Context, format string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int, int)                           {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopLayoutHooks) OnFallback(context.Context, string, int, int)                      {}

// NoopSpacingHooks is a no-op implementation of SpacingHooks.
type NoopSpacingHooks struct{}

func (NoopSpacingHooks) OnEvaluateStart(context.Context, int)                        {}
func (NoopSpacingHooks) OnEvaluateComplete(context.Context, int, int, time.Duration) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                              {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks  LayoutHooks  = NoopLayoutHooks{}
	spacingHooks SpacingHooks = NoopSpacingHooks{}
	renderHooks  RenderHooks  = NoopRenderHooks{}
	hooksMu      sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetSpacingHooks registers custom spacing hooks.
// This should be called once at application startup before any evaluations.
func SetSpacingHooks(h SpacingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		spacingHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Spacing returns the registered spacing hooks.
func Spacing() SpacingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return spacingHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	spacingHooks = NoopSpacingHooks{}
	renderHooks = NoopRenderHooks{}
}
