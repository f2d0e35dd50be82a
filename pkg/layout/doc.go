// Package layout divides key rows into sections and drives the placement
// primitives to position a full Grin array.
//
// A Grin row follows the fixed pattern horizontal → lower arc → upper arc →
// lower arc → horizontal. The orchestrator creates the footprint grid from a
// [Config], divides each row into [Section] values, computes per-row radii
// and angular steps, then places each section left to right while carrying a
// running angle cursor.
//
// Layout is best-effort by design: an infeasible pitch/radius combination
// falls back to a small fixed angle step, and a failed corner snap leaves the
// footprint at its arc position. Both are reported through the configured
// logger and the observability hooks but never abort the pass, so the array
// stays fully enumerated even with local placement defects. Malformed
// configuration, by contrast, fails fast at construction.
package layout
