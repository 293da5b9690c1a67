// Package null implements hal.Backend entirely in host memory. Unlike a
// true no-op backend it actually performs copies, clears, and view
// authoring against Go byte slices, so the core packages (track, upload,
// descriptor, binding, command) can be exercised end to end without a
// native driver.
package null
