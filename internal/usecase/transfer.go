package usecase

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/argosbackup/argos/internal/domain"
)

// Transfer pushes the day directory to the remote store and journals the
// copy confirmation together with the directory's on-disk size.
type Transfer struct {
	store       domain.RemoteStore
	notifier    domain.Notifier
	mainJournal Journal
	errJournal  Journal
	logger      Logger
}

func NewTransfer(store domain.RemoteStore, notifier domain.Notifier, mainJournal, errJournal Journal, logger Logger) *Transfer {
	return &Transfer{
		store:       store,
		notifier:    notifier,
		mainJournal: mainJournal,
		errJournal:  errJournal,
		logger:      logger,
	}
}

func (uc *Transfer) Execute(ctx context.Context, rc domain.RunContext) error {
	size, err := dirSize(rc.LocalDayDir)
	if err != nil {
		uc.logger.Warnf("could not measure %s: %v", rc.LocalDayDir, err)
	}

	output, err := uc.store.CopyDayDir(ctx, rc)
	if err != nil {
		msg := fmt.Sprintf("transfer to %s failed: %v", uc.store.Name(), err)
		if output != "" {
			msg += "\n" + output
		}
		_ = uc.errJournal.Append(msg)
		notifyFailure(ctx, uc.notifier, uc.logger, msg)
		return fmt.Errorf("transfer: %w", err)
	}

	_ = uc.mainJournal.Append(fmt.Sprintf("transferred %s (%s) to %s",
		rc.LocalDayDir, formatSize(size), uc.store.Name()))
	return nil
}

func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

func formatSize(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}
