package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keebtools/grinarray/pkg/observability"
)

// logHooks routes engine instrumentation to the CLI logger at debug level.
// Fallbacks stay at debug too: the layout logger already warns about them
// with the geometric detail.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLayoutStart(_ context.Context, rows, keys int) {
	h.logger.Debugf("layout start: %d rows, %d keys", rows, keys)
}

func (h logHooks) OnLayoutComplete(_ context.Context, rows, keys int, d time.Duration, err error) {
	if err != nil {
		h.logger.Errorf("layout failed after %s: %v", d.Round(time.Microsecond), err)
		return
	}
	h.logger.Debugf("layout complete: %d rows, %d keys in %s", rows, keys, d.Round(time.Microsecond))
}

func (h logHooks) OnFallback(_ context.Context, kind string, row, col int) {
	if col < 0 {
		h.logger.Debugf("degraded placement (%s) at row %d", kind, row)
		return
	}
	h.logger.Debugf("degraded placement (%s) at row %d col %d", kind, row, col)
}

func (h logHooks) OnEvaluateStart(_ context.Context, footprints int) {
	h.logger.Debugf("spacing start: %d footprints", footprints)
}

func (h logHooks) OnEvaluateComplete(_ context.Context, pairs, interferences int, d time.Duration) {
	h.logger.Debugf("spacing complete: %d pairs, %d interferences in %s",
		pairs, interferences, d.Round(time.Microsecond))
}

func (h logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debugf("render start: %s", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, bytes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Errorf("render %s failed after %s: %v", format, d.Round(time.Microsecond), err)
		return
	}
	h.logger.Debugf("render complete: %s, %d bytes in %s", format, bytes, d.Round(time.Microsecond))
}

// registerHooks points the engine's instrumentation at the CLI logger.
func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetLayoutHooks(h)
	observability.SetSpacingHooks(h)
	observability.SetRenderHooks(h)
}
