// control.go
//
// Run-wide stop flag. A signal must never interrupt a timed round, so the
// matrix builder polls the flag at pair boundaries only; every value already
// written stays valid when a run is cut short.
//
// Cross-thread access is a single atomic word, cheap enough to read from
// spin-adjacent code without disturbing the measurement.

package control

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var stop uint32

// Arm installs the SIGINT/SIGTERM handler that raises the stop flag.
func Arm() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		Shutdown()
	}()
}

// Shutdown raises the stop flag. Safe from any goroutine.
func Shutdown() {
	atomic.StoreUint32(&stop, 1)
}

// Stopped reports whether a shutdown has been requested.
func Stopped() bool {
	return atomic.LoadUint32(&stop) != 0
}

// Reset clears the stop flag so an embedder (or test) can run again.
func Reset() {
	atomic.StoreUint32(&stop, 0)
}
