package domain

import "context"

// RemoteStore is the run's single remote target. EnsureDayDir prepares the
// remote side for today's dump set; CopyDayDir pushes the whole day directory
// and returns the captured transfer output for logging and notification.
type RemoteStore interface {
	Name() string
	EnsureDayDir(ctx context.Context, rc RunContext) error
	CopyDayDir(ctx context.Context, rc RunContext) (output string, err error)
}
