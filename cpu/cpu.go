// cpu.go
//
// Platform-neutral surface of the affinity layer. Measurement validity
// depends entirely on exclusive thread placement, so every failure here is
// fatal to the run; nothing is retried.

package cpu

import "errors"

// ErrUnsupported is returned by Pin and Available on platforms without
// thread-level affinity control.
var ErrUnsupported = errors.New("cpu: thread affinity not supported on this platform")
