// store.go
//
// Optional SQLite persistence of finished runs. One row per run plus one row
// per unordered pair; repeated runs against the same database accumulate, so
// a box's latency history can be compared over time. Runs that should be
// comparable share a fingerprint: a digest of the mode, the sample count and
// the exact core sequence.

package store

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/sha3"

	"github.com/wangrongwei/core-scalability/handshake"
	"github.com/wangrongwei/core-scalability/matrix"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	fingerprint TEXT NOT NULL,
	name        TEXT,
	mode        TEXT NOT NULL,
	samples     INTEGER NOT NULL,
	ncpus       INTEGER NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS latencies (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	cpu_a  INTEGER NOT NULL,
	cpu_b  INTEGER NOT NULL,
	ns     INTEGER NOT NULL
);`

// Fingerprint digests everything that must match for two runs to be
// comparable: handshake mode, sample count and the exact core-id sequence.
// Timestamps and run names deliberately stay out.
func Fingerprint(cores []int, mode handshake.Mode, samples int) string {
	h := sha3.New256()
	fmt.Fprintf(h, "%s/%d", mode, samples)
	for _, c := range cores {
		fmt.Fprintf(h, "/%d", c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Save appends the finished run to the SQLite database at path, creating the
// file and schema on first use. Returns the new run's row id and its
// fingerprint. The whole run is written in one transaction; a failed save
// leaves the database without a partial run.
func Save(path string, m *matrix.Matrix, name string, mode handshake.Mode, samples int) (int64, string, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return 0, "", fmt.Errorf("store: open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return 0, "", fmt.Errorf("store: create schema: %w", err)
	}

	fp := Fingerprint(m.Cores(), mode, samples)

	tx, err := db.Begin()
	if err != nil {
		return 0, "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO runs (fingerprint, name, mode, samples, ncpus, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		fp, name, mode.String(), samples, m.Size(), time.Now().Unix(),
	)
	if err != nil {
		return 0, "", fmt.Errorf("store: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, "", fmt.Errorf("store: run id: %w", err)
	}

	ins, err := tx.Prepare("INSERT INTO latencies (run_id, cpu_a, cpu_b, ns) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, "", fmt.Errorf("store: prepare: %w", err)
	}
	defer ins.Close()

	cores := m.Cores()
	for i := 0; i < m.Size(); i++ {
		for j := i + 1; j < m.Size(); j++ {
			if _, err := ins.Exec(runID, cores[i], cores[j], m.At(i, j)); err != nil {
				return 0, "", fmt.Errorf("store: insert pair (%d,%d): %w", cores[i], cores[j], err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, "", fmt.Errorf("store: commit: %w", err)
	}
	return runID, fp, nil
}
