package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/argosbackup/argos/internal/domain"
)

// Backup dumps every user database into the run's day directory, one
// compressed artifact per database. The first dump failure aborts the whole
// run; remaining databases are not attempted.
type Backup struct {
	db          domain.Database
	notifier    domain.Notifier
	mainJournal Journal
	errJournal  Journal
	logger      Logger
}

func NewBackup(db domain.Database, notifier domain.Notifier, mainJournal, errJournal Journal, logger Logger) *Backup {
	return &Backup{
		db:          db,
		notifier:    notifier,
		mainJournal: mainJournal,
		errJournal:  errJournal,
		logger:      logger,
	}
}

func (uc *Backup) Execute(ctx context.Context, rc domain.RunContext) error {
	start := time.Now()

	names, err := uc.db.ListUserDatabases(ctx)
	if err != nil {
		msg := fmt.Sprintf("could not enumerate databases: %v", err)
		_ = uc.errJournal.Append(msg)
		notifyFailure(ctx, uc.notifier, uc.logger, msg)
		return fmt.Errorf("enumerate databases: %w", err)
	}
	uc.logger.Infof("found %d user database(s)", len(names))

	for _, name := range names {
		outputPath := filepath.Join(rc.LocalDayDir, ArtifactName(name, rc.Date))

		if err := uc.db.Dump(ctx, name, outputPath); err != nil {
			msg := fmt.Sprintf("dump of database %s failed: %v", name, err)
			_ = uc.errJournal.Append(msg)
			notifyFailure(ctx, uc.notifier, uc.logger, msg)
			return fmt.Errorf("dump %s: %w", name, err)
		}

		_ = uc.mainJournal.Append(fmt.Sprintf("database %s dumped to %s", name, outputPath))
	}

	uc.logger.Infof("dumped %d database(s) in %s", len(names), time.Since(start).Round(time.Second))
	return nil
}

// ArtifactName builds the fixed per-database artifact filename:
// {database}.{date}.dump.sql.gz
func ArtifactName(database, date string) string {
	return fmt.Sprintf("%s.%s.dump.sql.gz", database, date)
}
