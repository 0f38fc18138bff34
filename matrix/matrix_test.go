package matrix

import "testing"

// TestSetWritesBothOrientations verifies the symmetric write and the
// untouched diagonal.
func TestSetWritesBothOrientations(t *testing.T) {
	m := New([]int{0, 2, 5})
	m.Set(0, 2, 37)
	if m.At(0, 2) != 37 || m.At(2, 0) != 37 {
		t.Fatalf("At(0,2)=%d At(2,0)=%d, want 37/37", m.At(0, 2), m.At(2, 0))
	}
	for i := 0; i < m.Size(); i++ {
		if m.At(i, i) != 0 {
			t.Fatalf("diagonal At(%d,%d) = %d, want 0", i, i, m.At(i, i))
		}
	}
}

// TestSetRejectsSelfPair confirms the diagonal cannot be written at all.
func TestSetRejectsSelfPair(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Set(1,1) should panic")
		}
	}()
	New([]int{0, 1}).Set(1, 1, 5)
}

// TestRowsCopies checks Rows returns detached slices, keeping the matrix
// read-only after the build.
func TestRowsCopies(t *testing.T) {
	m := New([]int{0, 1})
	m.Set(0, 1, 9)
	rows := m.Rows()
	rows[0][1] = 1000
	if m.At(0, 1) != 9 {
		t.Fatalf("mutating Rows() result leaked into matrix: At(0,1)=%d", m.At(0, 1))
	}
}

// TestDisplayOrderIdentity checks that without SMT interleave the
// presentation order is untouched.
func TestDisplayOrderIdentity(t *testing.T) {
	order := DisplayOrder(5, false)
	for k, v := range order {
		if v != k {
			t.Fatalf("order[%d] = %d, want identity", k, v)
		}
	}
}

// TestDisplayOrderSMT checks the interleave formula on an 8-wide sequence
// and that the result is a valid permutation even when the sequence has no
// real sibling structure.
func TestDisplayOrderSMT(t *testing.T) {
	order := DisplayOrder(8, true)
	want := []int{0, 4, 1, 5, 2, 6, 3, 7}
	for k := range want {
		if order[k] != want[k] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	seen := make(map[int]bool, len(order))
	for _, v := range order {
		if v < 0 || v >= len(order) || seen[v] {
			t.Fatalf("order %v is not a permutation", order)
		}
		seen[v] = true
	}
}
