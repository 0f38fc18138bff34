//go:build linux

// affinity_linux.go
//
// Thread pinning and core enumeration on top of sched_{set,get}affinity(2).
// The mask is built with unix.CPUSet rather than a single machine word so
// core ids above 63 work; the affinity mask is the kernel's, so ids may be
// sparse and need not start at zero.

package cpu

import (
	"fmt"
	"sort"

	"golang.org/x/sys/unix"
)

// Pin restricts the calling OS thread to the single logical CPU core.
// The caller must hold runtime.LockOSThread for the pin to stick to the
// intended thread. A refused pin means a misconfigured environment, never
// a transient condition; callers must treat the error as fatal.
func Pin(core int) error {
	var set unix.CPUSet
	if core < 0 || core >= len(set)*64 {
		return fmt.Errorf("cpu: core id %d outside representable range", core)
	}
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("cpu: pin thread to core %d: %w", core, err)
	}
	return nil
}

// Available returns the logical CPUs the process may run on, in ascending
// id order. Ids come straight from the process affinity mask.
func Available() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("cpu: query affinity mask: %w", err)
	}
	cores := make([]int, 0, set.Count())
	for id := 0; id < len(set)*64; id++ {
		if set.IsSet(id) {
			cores = append(cores, id)
		}
	}
	sort.Ints(cores) // IsSet scan is already ordered; keep the contract explicit
	return cores, nil
}
