package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/wangrongwei/core-scalability/handshake"
	"github.com/wangrongwei/core-scalability/matrix"
)

// testMatrix builds a 3-core matrix with distinct pair values.
func testMatrix() *matrix.Matrix {
	m := matrix.New([]int{0, 1, 3})
	m.Set(0, 1, 40)
	m.Set(0, 2, 80)
	m.Set(1, 2, 60)
	return m
}

// TestSaveRoundTrip saves one run and reads the rows back through a plain
// connection, checking the run header and one latency row per pair.
func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icl.db")
	m := testMatrix()

	runID, fp, err := Save(path, m, "boxA", handshake.ModeRead, 10)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runID == 0 || fp == "" {
		t.Fatalf("runID=%d fp=%q, want non-zero ids", runID, fp)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var mode string
	var samples, ncpus int
	err = db.QueryRow("SELECT mode, samples, ncpus FROM runs WHERE id = ?", runID).
		Scan(&mode, &samples, &ncpus)
	if err != nil {
		t.Fatalf("read run: %v", err)
	}
	if mode != "read" || samples != 10 || ncpus != 3 {
		t.Fatalf("run row = %s/%d/%d, want read/10/3", mode, samples, ncpus)
	}

	var pairs int
	if err := db.QueryRow("SELECT COUNT(*) FROM latencies WHERE run_id = ?", runID).Scan(&pairs); err != nil {
		t.Fatalf("count latencies: %v", err)
	}
	if pairs != 3 {
		t.Fatalf("latency rows = %d, want 3", pairs)
	}

	var ns int64
	err = db.QueryRow("SELECT ns FROM latencies WHERE run_id = ? AND cpu_a = 0 AND cpu_b = 3", runID).Scan(&ns)
	if err != nil {
		t.Fatalf("read pair (0,3): %v", err)
	}
	if ns != 80 {
		t.Fatalf("pair (0,3) = %d ns, want 80", ns)
	}
}

// TestSaveAccumulatesRuns appends two runs to one file and expects both to
// survive with distinct ids.
func TestSaveAccumulatesRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icl.db")
	m := testMatrix()

	id1, _, err := Save(path, m, "", handshake.ModeRead, 10)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	id2, _, err := Save(path, m, "", handshake.ModeWrite, 10)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("both runs got id %d", id1)
	}
}

// TestFingerprintStability checks the digest is deterministic for equal
// inputs and moves when mode, samples or the core sequence change.
func TestFingerprintStability(t *testing.T) {
	cores := []int{0, 1, 3}
	base := Fingerprint(cores, handshake.ModeRead, 10)
	if base != Fingerprint([]int{0, 1, 3}, handshake.ModeRead, 10) {
		t.Fatal("fingerprint not deterministic")
	}
	for name, other := range map[string]string{
		"mode":    Fingerprint(cores, handshake.ModeWrite, 10),
		"samples": Fingerprint(cores, handshake.ModeRead, 20),
		"cores":   Fingerprint([]int{0, 1, 2}, handshake.ModeRead, 10),
	} {
		if other == base {
			t.Errorf("fingerprint ignores %s", name)
		}
	}
}
