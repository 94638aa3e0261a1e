package usecase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/argosbackup/argos/internal/infrastructure/journal"
)

const artifactSuffix = ".dump.sql.gz"

// Cleanup prunes artifacts older than the retention window and trims the
// journals to their maximum line count. Best-effort: problems are logged,
// never fatal, and the exit code is unaffected.
type Cleanup struct {
	dumpsRoot    string
	window       time.Duration
	maxLogLines  int
	journalPaths []string
	mainJournal  Journal
	logger       Logger
}

func NewCleanup(dumpsRoot string, window time.Duration, maxLogLines int, journalPaths []string, mainJournal Journal, logger Logger) *Cleanup {
	return &Cleanup{
		dumpsRoot:    dumpsRoot,
		window:       window,
		maxLogLines:  maxLogLines,
		journalPaths: journalPaths,
		mainJournal:  mainJournal,
		logger:       logger,
	}
}

func (uc *Cleanup) Execute(ctx context.Context) error {
	cutoff := time.Now().Add(-uc.window)
	deleted := SweepArtifacts(uc.dumpsRoot, cutoff, uc.logger)
	_ = uc.mainJournal.Append(fmt.Sprintf("retention sweep: %d artifact(s) removed", deleted))

	for _, path := range uc.journalPaths {
		if err := journal.Trim(path, uc.maxLogLines); err != nil {
			uc.logger.Warnf("journal trim for %s: %v", path, err)
		}
	}

	return nil
}

// SweepArtifacts deletes every artifact under root modified strictly before
// cutoff. A file whose age equals the retention window exactly is retained.
// Returns the number of files removed.
func SweepArtifacts(root string, cutoff time.Time, logger Logger) int {
	deleted := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warnf("retention sweep: %v", err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), artifactSuffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Warnf("retention sweep: stat %s: %v", path, err)
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				logger.Warnf("retention sweep: remove %s: %v", path, err)
				return nil
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		logger.Warnf("retention sweep: %v", err)
	}
	return deleted
}
