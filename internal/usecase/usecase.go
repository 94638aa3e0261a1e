package usecase

import (
	"context"

	"github.com/argosbackup/argos/internal/domain"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Journal is the operator-facing run log; usecases append to a main journal
// on success and an error journal on failure.
type Journal interface {
	Append(message string) error
	Path() string
}

// notifyFailure sends a failure message and only logs delivery problems:
// the notification is the last act on a failure path, never a new failure.
func notifyFailure(ctx context.Context, n domain.Notifier, log Logger, message string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, message); err != nil {
		log.Errorf("failure notification not delivered: %v", err)
	}
}
