package session

import "github.com/future-re/memscan/procio"

// LivenessState re-exports procio.Liveness under the session façade's own
// name, consistent with ScanOptions/RegionLevel's pattern of not leaking
// lower package names through the A6 surface.
type LivenessState = procio.Liveness

const (
	LivenessRunning = procio.Running
	LivenessZombie  = procio.Zombie
	LivenessDead    = procio.Dead
	LivenessUnknown = procio.Unknown
)

// ProbeLiveness probes /proc/<pid>/status for pid's current state (A4).
func ProbeLiveness(pid int) (LivenessState, error) {
	return procio.ProbeLiveness(pid)
}
