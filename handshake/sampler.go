// sampler.go
//
// Per-pair sampling policy: many rounds, keep the minimum. Interference from
// other load can only inflate a round, never deflate it below the true
// cost, so the minimum over enough rounds converges on the unloaded latency.
// No mean, no percentiles.

package handshake

import (
	"time"

	"github.com/wangrongwei/core-scalability/constants"
)

// Sampler runs the prober side of a full measurement for one core pair.
// Values are fixed for the whole run; the zero value is not usable.
type Sampler struct {
	Mode    Mode
	Rounds  int
	Preheat bool
}

// Run drives Rounds handshake rounds against an owner already spinning on p
// and returns the one-way latency in nanoseconds: the minimum observed round
// trip divided by two directions and by the steps in a round. Both cells are
// reset to the sentinel before every round, so a round can never observe
// residue from the previous one.
//
// The caller must be locked and pinned to the pair's prober core.
func (s Sampler) Run(p *CellPair) int64 {
	if s.Preheat {
		Preheat()
	}
	best := int64(-1)
	for m := 0; m < s.Rounds; m++ {
		p.Reset()
		var rtt int64
		if s.Mode == ModeWrite {
			rtt = proberWriteRound(p)
		} else {
			rtt = proberReadRound(p)
		}
		if best == -1 || rtt < best {
			best = rtt
		}
	}
	return best / 2 / constants.StepsPerRound
}

// Preheat spins on the monotonic clock for PreheatDuration. Spinning, not
// sleeping: the point is to hold the core busy so its frequency and power
// state settle before the first timed round. Applied once per side before
// the round loop, never between rounds.
func Preheat() {
	start := time.Now()
	for time.Since(start) < constants.PreheatDuration {
	}
}
