// builder.go
//
// Drives the whole run: one background owner thread per pair, strictly one
// pair in flight at a time. Sequential pairs are deliberate; a second
// concurrent pair would push its own coherency traffic through the same
// interconnect being measured.

package matrix

import (
	"errors"
	"runtime"

	"github.com/go-logr/logr"

	"github.com/wangrongwei/core-scalability/control"
	"github.com/wangrongwei/core-scalability/cpu"
	"github.com/wangrongwei/core-scalability/handshake"
)

// ErrInterrupted is returned when a shutdown request lands between pairs.
var ErrInterrupted = errors.New("matrix: run interrupted")

// Config is the immutable per-run configuration assembled by the caller.
// Cores is the enumerated core-id sequence in its measurement order.
type Config struct {
	Cores   []int
	Samples int
	Mode    handshake.Mode
	Preheat bool
}

// Pairs returns the number of unordered pairs the run will measure.
func (c Config) Pairs() int {
	n := len(c.Cores)
	return n * (n - 1) / 2
}

// Build measures every unordered pair (i < j) of cfg.Cores and returns the
// finished symmetric matrix. The calling goroutine becomes the prober thread
// and is locked and re-pinned for every pair; exactly one extra OS thread
// (the pair's owner) is live at any instant.
//
// onPair, if non-nil, is invoked after each completed pair; it runs between
// measurements, so it may do slow work like progress rendering.
//
// Any pin failure aborts the build. When the prober side fails to pin while
// an owner thread is already spinning, the cells are poisoned with the abort
// signal so the owner exits its opening wait and can be joined before the
// error is returned; no spinning thread outlives the call.
func Build(cfg Config, log logr.Logger, onPair func()) (*Matrix, error) {
	m := New(cfg.Cores)
	n := len(cfg.Cores)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	sampler := handshake.Sampler{
		Mode:    cfg.Mode,
		Rounds:  cfg.Samples,
		Preheat: cfg.Preheat,
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if control.Stopped() {
				return nil, ErrInterrupted
			}

			cells := handshake.NewCellPair()
			pinned := make(chan error, 1)
			done := make(chan struct{})

			go func(core int) {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				defer close(done)
				if err := cpu.Pin(core); err != nil {
					pinned <- err
					return
				}
				pinned <- nil
				if cfg.Preheat {
					handshake.Preheat()
				}
				handshake.RunOwner(cells, cfg.Mode, cfg.Samples)
			}(cfg.Cores[i])

			if err := <-pinned; err != nil {
				<-done
				return nil, err
			}
			if err := cpu.Pin(cfg.Cores[j]); err != nil {
				cells.Abort()
				<-done
				return nil, err
			}

			oneWay := sampler.Run(cells)
			<-done

			m.Set(i, j, oneWay)
			log.V(1).Info("pair measured",
				"cpuA", cfg.Cores[i], "cpuB", cfg.Cores[j], "ns", oneWay)
			if onPair != nil {
				onPair()
			}
		}
	}
	return m, nil
}
