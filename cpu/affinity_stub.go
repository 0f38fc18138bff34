//go:build !linux

// affinity_stub.go
//
// Non-Linux stub. A silent no-op pin would let the scheduler migrate the
// measurement threads and invalidate every number produced, so the stub
// refuses outright instead of degrading.

package cpu

// Pin reports ErrUnsupported; there is no affinity control here.
func Pin(core int) error { return ErrUnsupported }

// Available reports ErrUnsupported; without a bindable mask the core
// sequence would be meaningless.
func Available() ([]int, error) { return nil, ErrUnsupported }
