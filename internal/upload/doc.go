// Package upload implements a ring of fixed-size host-visible chunks CPU
// writes suballocate from before a copy command moves them onto a
// default-heap resource. A chunk is reclaimed once the fence value it
// was submitted under has completed, so the pool never grows past the
// number of chunks genuinely in flight.
package upload
