// table.go
//
// Whitespace-aligned text rendering of the finished matrix. The 4-wide
// columns and leading " CPU" header are part of the tool's interface: the
// gnuplot script parses the very same block as rowheaders/columnheaders
// matrix data.

package report

import (
	"fmt"
	"strings"

	"github.com/wangrongwei/core-scalability/matrix"
)

// Table renders the matrix with rows and columns permuted by order, which
// must be a permutation of 0..Size-1 (see matrix.DisplayOrder). Values are
// untouched; only presentation order changes.
func Table(m *matrix.Matrix, order []int) string {
	var b strings.Builder
	cores := m.Cores()

	fmt.Fprintf(&b, "%4s", "CPU")
	for _, k := range order {
		fmt.Fprintf(&b, " %4d", cores[k])
	}
	b.WriteByte('\n')

	for _, i := range order {
		fmt.Fprintf(&b, "%4d", cores[i])
		for _, j := range order {
			fmt.Fprintf(&b, " %4d", m.At(i, j))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
