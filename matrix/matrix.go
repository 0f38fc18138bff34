// matrix.go
//
// The finished latency table. Indexed by position in the enumerated core
// sequence, never by raw OS id; ids may be sparse, so the sequence is the
// single source of index->id mapping.

package matrix

// Matrix is an ncpus x ncpus table of one-way latencies in nanoseconds.
// Symmetric by construction; the diagonal stays at zero because self-pairs
// are never measured. Built once, then read-only.
type Matrix struct {
	cores []int
	ns    []int64 // flat row-major, len = ncpus*ncpus
}

// New returns a zeroed matrix over the given ordered core sequence.
func New(cores []int) *Matrix {
	n := len(cores)
	return &Matrix{
		cores: append([]int(nil), cores...),
		ns:    make([]int64, n*n),
	}
}

// Size returns the number of cores (rows and columns).
func (m *Matrix) Size() int { return len(m.cores) }

// Cores returns the ordered core-id sequence the indices refer to.
func (m *Matrix) Cores() []int { return m.cores }

// At returns the one-way latency between sequence positions i and j.
func (m *Matrix) At(i, j int) int64 { return m.ns[i*len(m.cores)+j] }

// Set records the measured latency for the unordered pair (i, j) in both
// orientations. Self-pairs are rejected so the diagonal invariant can never
// be broken by a caller.
func (m *Matrix) Set(i, j int, ns int64) {
	if i == j {
		panic("matrix: self-pair has no latency")
	}
	n := len(m.cores)
	m.ns[i*n+j] = ns
	m.ns[j*n+i] = ns
}

// Rows returns the table as row slices, for export encoders.
func (m *Matrix) Rows() [][]int64 {
	n := len(m.cores)
	rows := make([][]int64, n)
	for i := 0; i < n; i++ {
		rows[i] = append([]int64(nil), m.ns[i*n:(i+1)*n]...)
	}
	return rows
}

// DisplayOrder returns the presentation permutation of sequence indices.
// Without smt it is the identity. With smt, position k maps to
// (k>>1)+(k&1)*n/2, which interleaves the second half of the sequence
// (assumed to be sibling hardware threads) with the first half (assumed to
// be their physical cores). Purely cosmetic; the matrix itself is untouched.
func DisplayOrder(n int, smt bool) []int {
	order := make([]int, n)
	for k := 0; k < n; k++ {
		if smt {
			order[k] = (k >> 1) + (k&1)*n/2
		} else {
			order[k] = k
		}
	}
	return order
}
