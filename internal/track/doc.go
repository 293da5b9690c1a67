// Package track tracks the current pipeline state of every buffer and
// texture subresource a command list touches and emits the minimal set
// of hal.Barrier values needed to transition them to a newly-required
// state. Buffers carry one state for the whole resource; textures carry
// either one whole-resource state or, once a request addresses less than
// the full resource, a per-subresource vector. A pending UAV-to-UAV
// request coalesces into the existing pending barrier for that resource
// instead of appending a duplicate one.
package track
