// Package command drives one native command list through its lifecycle
// (Idle -> Open -> Closed -> Submitted -> Retired), batches barriers from
// a track.Tracker before each draw/dispatch/copy, diffs bound state so a
// pipeline, binding table, or render target is only rebound when it
// actually changed, and patches a volatile constant buffer's root
// parameter whenever its backing address moved since the last draw.
//
// The volatile-constant-buffer rebind check uses the same "address
// changed since last bind" polarity on both the graphics and the
// compute path; an earlier draft of this package had the compute path
// check the opposite condition, which meant a dispatch could silently
// keep binding a volatile CB's stale, already-overwritten address.
package command
