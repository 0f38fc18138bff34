// cell.go
//
// The shared signaling cells for one measured core pair. Each cell sits on
// its own cache line, so the only line bouncing between the two cores during
// a timed round is the one being handed off. A CellPair is created fresh for
// every pair and discarded afterwards; state from an earlier pair can never
// leak into a later measurement.

package handshake

import (
	"sync/atomic"

	"github.com/wangrongwei/core-scalability/constants"
)

// CellPair holds the two handshake cells, line-aligned and line-separated.
// The cells carry no payload; they exist purely to force cache-line
// ownership transfers between the two pinned threads.
type CellPair struct {
	_    [constants.CacheLineSize]byte
	seq1 atomic.Int32
	_    [constants.CacheLineSize - 4]byte
	seq2 atomic.Int32
	_    [constants.CacheLineSize - 4]byte
}

// NewCellPair returns a pair with both cells at the sentinel.
func NewCellPair() *CellPair {
	p := &CellPair{}
	p.Reset()
	return p
}

// Reset parks both cells at the sentinel. The prober calls this before every
// round while the owner is still in its opening wait, so no ordering beyond
// the stores themselves is needed.
func (p *CellPair) Reset() {
	p.seq1.Store(constants.Sentinel)
	p.seq2.Store(constants.Sentinel)
}

// Abort stores the abort signal in both cells. Used by the prober when its
// own pin fails before any round ran; the owner, necessarily still parked in
// its opening wait, sees the signal and returns instead of spinning forever.
func (p *CellPair) Abort() {
	p.seq1.Store(constants.AbortSignal)
	p.seq2.Store(constants.AbortSignal)
}
