// json.go
//
// Machine-readable export of a finished run.

package report

import (
	"github.com/sugawarayuuta/sonnet"

	"github.com/wangrongwei/core-scalability/handshake"
	"github.com/wangrongwei/core-scalability/matrix"
)

// Run is the JSON shape of one complete measurement.
type Run struct {
	Name      string    `json:"name,omitempty"`
	Mode      string    `json:"mode"`
	Samples   int       `json:"samples"`
	CPUs      []int     `json:"cpus"`
	LatencyNS [][]int64 `json:"latency_ns"`
}

// JSON encodes the run. Rows follow the measurement order of the core
// sequence; display permutations never apply to exported data.
func JSON(m *matrix.Matrix, name string, mode handshake.Mode, samples int) ([]byte, error) {
	run := Run{
		Name:      name,
		Mode:      mode.String(),
		Samples:   samples,
		CPUs:      m.Cores(),
		LatencyNS: m.Rows(),
	}
	return sonnet.MarshalIndent(run, "", "\t")
}
