// constants.go
//
// Protocol constants for the inter-core handshake. No runtime logic here;
// every value must be compile-time resolvable.

package constants

import "time"

const (
	// StepsPerRound is the fixed number of handshake steps timed per round.
	// The one-way conversion divides by this value, so changing it changes
	// the meaning of every reported latency.
	StepsPerRound = 100

	// Sentinel is the value both cells hold before a round starts. It lies
	// outside the 0..StepsPerRound-1 step range, so a stale read can never
	// be mistaken for a live step.
	Sentinel = -1

	// AbortSignal, stored in both cells by the prober, tells an owner
	// parked in its opening wait that the round loop will never start.
	// Distinct from the sentinel and from every live protocol value.
	AbortSignal = -2

	// WriteModeTerminal is the value seq1 holds after the owner's last CAS
	// in write mode. Derived from StepsPerRound so the prober's final wait
	// cannot drift out of sync with the step count.
	WriteModeTerminal = 2*StepsPerRound - 1

	// DefaultSamples is the per-pair round count when --samples is absent.
	DefaultSamples = 1000

	// PreheatDuration is how long each side spins on the monotonic clock
	// before the round loop when preheat is requested. Warms the core's
	// clock and power state so the first rounds are not skewed.
	PreheatDuration = 200 * time.Millisecond

	// CacheLineSize pads the two handshake cells onto separate lines so the
	// only coherence traffic inside a timed round is the hand-off itself.
	CacheLineSize = 64
)
