// Package queue wraps one native hal.Queue with the monotonic fence
// bookkeeping every submission needs: the next value to signal, the
// highest value known completed, and the list of in-flight instances
// waiting to be released once that value arrives. internal/command's
// Instance type implements Releasable and registers itself here at
// submit time.
package queue
