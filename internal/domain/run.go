package domain

import "time"

// RunContext is the immutable per-run snapshot of derived values. It is built
// once at the start of a run and passed explicitly, so no component reads
// clocks, hostnames, or the persisted identity on its own.
type RunContext struct {
	Hostname    string
	MachineID   string
	Date        string // 2006-01-02
	Weekday     string // Monday .. Sunday
	LocalDayDir string
	StartedAt   time.Time
}

// HostDir is the directory name that namespaces this host's dump sets,
// locally and on the remote.
func (rc RunContext) HostDir() string {
	return rc.Hostname + "-" + rc.MachineID
}
