package rhi

import "errors"

// ErrReleased is returned by any method called on a Device (or an object
// it created) after Release/Destroy has already run.
var ErrReleased = errors.New("rhi: object already released")
