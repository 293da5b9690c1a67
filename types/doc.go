// Package types holds the value-level vocabulary shared by every layer of
// the RHI: pixel formats, resource usage flags, shader stage tags, and the
// plain descriptor structs that create-calls accept. Nothing in this
// package owns a native handle or a mutex; it is pure data, mirrored
// closely across backends the way the teacher's own types/*.go files are.
package types
