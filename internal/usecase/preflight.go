package usecase

import (
	"context"
	"fmt"

	"github.com/argosbackup/argos/internal/config"
	"github.com/argosbackup/argos/internal/domain"
)

// Hostnames the agent refuses to run under: a host still carrying one of
// these would collide with every other misconfigured host in the remote
// namespace.
var disallowedHostnames = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
}

func HostnameAllowed(name string) bool {
	return !disallowedHostnames[name]
}

// Preflight gates the run: required settings, an allowed hostname, and a
// reachable database server. Nothing is dumped or transferred until it
// passes.
type Preflight struct {
	cfg        *config.Config
	db         domain.Database
	notifier   domain.Notifier
	errJournal Journal
	logger     Logger
}

func NewPreflight(cfg *config.Config, db domain.Database, notifier domain.Notifier, errJournal Journal, logger Logger) *Preflight {
	return &Preflight{cfg: cfg, db: db, notifier: notifier, errJournal: errJournal, logger: logger}
}

func (uc *Preflight) Execute(ctx context.Context, rc domain.RunContext) error {
	// Local configuration checks are journaled but not emailed.
	if err := uc.cfg.Validate(); err != nil {
		_ = uc.errJournal.Append(fmt.Sprintf("preflight: %v", err))
		return fmt.Errorf("preflight: %w", err)
	}

	if !HostnameAllowed(rc.Hostname) {
		err := fmt.Errorf("preflight: hostname %q is not allowed", rc.Hostname)
		_ = uc.errJournal.Append(err.Error())
		return err
	}

	if err := uc.db.Ping(ctx); err != nil {
		msg := fmt.Sprintf("preflight: database server unreachable: %v", err)
		_ = uc.errJournal.Append(msg)
		notifyFailure(ctx, uc.notifier, uc.logger, msg)
		return fmt.Errorf("preflight: %w", err)
	}

	uc.logger.Infof("preflight passed for %s", rc.HostDir())
	return nil
}
