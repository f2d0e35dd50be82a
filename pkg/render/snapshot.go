package render

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/layout"
	"github.com/keebtools/grinarray/pkg/spacing"
)

// KeySnapshot is one footprint pose in a layout snapshot. Rotation is in
// degrees, the unit external tools expect.
type KeySnapshot struct {
	Row         int     `json:"row"`
	Col         int     `json:"col"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	RotationDeg float64 `json:"rotation_deg"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

// Snapshot is the JSON export of one layout pass: the configuration it was
// computed from, every key pose, and optionally the spacing summary.
type Snapshot struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Config      layout.Config    `json:"config"`
	Keys        []KeySnapshot    `json:"keys"`
	Spacing     *spacing.Summary `json:"spacing,omitempty"`
}

// SnapshotOption configures BuildSnapshot.
type SnapshotOption func(*Snapshot)

// WithSpacing embeds a spacing evaluation in the snapshot.
func WithSpacing(s spacing.Summary) SnapshotOption {
	return func(snap *Snapshot) { snap.Spacing = &s }
}

// BuildSnapshot captures the array's current poses. Each call gets a fresh
// run ID so repeated exports of the same layout stay distinguishable.
func BuildSnapshot(a *layout.Array, opts ...SnapshotOption) Snapshot {
	snap := Snapshot{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Config:      a.Config(),
	}

	for _, fp := range a.Footprints() {
		snap.Keys = append(snap.Keys, KeySnapshot{
			Row:         fp.Row,
			Col:         fp.Col,
			X:           fp.X,
			Y:           fp.Y,
			RotationDeg: fp.Rotation * 180 / math.Pi,
			Width:       fp.Width,
			Height:      fp.Height,
		})
	}

	for _, opt := range opts {
		opt(&snap)
	}
	return snap
}

// WriteJSON writes the snapshot as indented JSON.
func WriteJSON(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	return nil
}
