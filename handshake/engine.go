// engine.go
//
// The two-sided handshake itself. One side (the owner) runs on a background
// thread pinned to the pair's first core; the other (the prober) runs on the
// main thread pinned to the second core and holds the stopwatch.
//
// Every wait below is a tight spin on an atomic load. Nothing here may
// block, yield or sleep: any scheduler involvement would be timed along
// with the interconnect. Go's atomics are sequentially consistent, which
// contains the acquire/release ordering the hand-off needs; on amd64 the
// loads and stores compile to plain MOVs, so the loop measures the cache
// coherency protocol and nothing else.

package handshake

import (
	"time"

	"github.com/wangrongwei/core-scalability/constants"
)

// Mode selects which handshake variant a run uses. The choice is per run,
// not per pair.
type Mode int

const (
	// ModeRead measures read-sharing propagation: each step is a release
	// store answered by an acquire load, one line transfer per direction.
	ModeRead Mode = iota

	// ModeWrite measures write-contention propagation: each step is a
	// successful compare-and-swap, so the line must be exclusively owned
	// by the writer at the moment of the step.
	ModeWrite
)

// String names the mode the way the output title does.
func (m Mode) String() string {
	if m == ModeWrite {
		return "write"
	}
	return "read"
}

// RunOwner plays the owner side for the given number of rounds and returns
// once the prober has driven the last round to completion, or early if the
// prober aborts before a round starts. The caller must already be locked and
// pinned to the pair's owner core.
func RunOwner(p *CellPair, mode Mode, rounds int) {
	for m := 0; m < rounds; m++ {
		if mode == ModeWrite {
			if !ownerWriteRound(p) {
				return
			}
		} else {
			if !ownerReadRound(p) {
				return
			}
		}
	}
}

// ownerReadRound mirrors the prober: wait for step n on seq1, echo it on
// seq2. Each iteration moves seq1's line prober->owner and seq2's line
// owner->prober, two transfers per step. Returns false on an abort signal.
//
// The abort check reuses the value the wait loop already loaded; it adds a
// register compare per poll, never an extra atomic operation. An abort can
// only arrive while the prober has run no round at all, so the step waits
// are the only place it can land.
func ownerReadRound(p *CellPair) bool {
	for n := int32(0); n < constants.StepsPerRound; n++ {
		for {
			v := p.seq1.Load()
			if v == n {
				break
			}
			if v == constants.AbortSignal {
				return false
			}
		}
		p.seq2.Store(n)
	}
	return true
}

// ownerWriteRound acknowledges the prober's readiness signal on seq2, then
// advances the even->odd half of the CAS chain on seq1: 2n becomes 2n+1.
// The prober owns the odd->even half, so every successful CAS implies the
// line just arrived from the other core. Returns false on an abort signal;
// the CAS chain itself carries no abort check, since an abort can only land
// while the owner is parked in the readiness wait.
func ownerWriteRound(p *CellPair) bool {
	for {
		v := p.seq2.Load()
		if v == 0 {
			break
		}
		if v == constants.AbortSignal {
			return false
		}
	}
	p.seq2.Store(1)
	for n := int32(0); n < constants.StepsPerRound; n++ {
		for !p.seq1.CompareAndSwap(2*n, 2*n+1) {
		}
	}
	return true
}

// proberReadRound times the prober's half of the read handshake: store step
// n into seq1, spin until the owner echoes n on seq2. Returns the round trip
// duration in nanoseconds, measured from just before the first store to just
// after the last echo is observed.
func proberReadRound(p *CellPair) int64 {
	start := time.Now()
	for n := int32(0); n < constants.StepsPerRound; n++ {
		p.seq1.Store(n)
		for p.seq2.Load() != n {
		}
	}
	return time.Since(start).Nanoseconds()
}

// proberWriteRound performs the readiness exchange on seq2, then times the
// odd->even half of the CAS chain: 2n-1 becomes 2n (the first step promotes
// the sentinel to 0). The timer stops only after seq1 reaches the terminal
// value, i.e. after the owner's final CAS has propagated back.
func proberWriteRound(p *CellPair) int64 {
	p.seq2.Store(0)
	for p.seq2.Load() == 0 {
	}
	p.seq2.Store(constants.Sentinel)

	start := time.Now()
	for n := int32(0); n < constants.StepsPerRound; n++ {
		for !p.seq1.CompareAndSwap(2*n-1, 2*n) {
		}
	}
	for p.seq1.Load() != constants.WriteModeTerminal {
	}
	return time.Since(start).Nanoseconds()
}
