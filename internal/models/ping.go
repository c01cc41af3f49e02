package models

// PingStatus is the tri-state outcome of a reachability probe, plus the
// idle state before any probe ran. Transitions happen only on the probe
// path and each new probe resets to PingRunning.
type PingStatus int

const (
	PingIdle PingStatus = iota
	PingRunning
	PingOK
	PingFail
)

func (s PingStatus) String() string {
	switch s {
	case PingRunning:
		return "running"
	case PingOK:
		return "ok"
	case PingFail:
		return "fail"
	default:
		return "idle"
	}
}
