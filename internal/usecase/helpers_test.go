package usecase

import (
	"context"
	"errors"
	"os"

	"github.com/argosbackup/argos/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}

type fakeJournal struct {
	lines []string
}

func (f *fakeJournal) Append(message string) error {
	f.lines = append(f.lines, message)
	return nil
}

func (f *fakeJournal) Path() string { return "" }

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

type fakeDatabase struct {
	pingErr error
	names   []string
	listErr error
	failOn  string
	dumped  []string
}

func (f *fakeDatabase) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeDatabase) ListUserDatabases(ctx context.Context) ([]string, error) {
	return f.names, f.listErr
}

func (f *fakeDatabase) Dump(ctx context.Context, name, outputPath string) error {
	if name == f.failOn {
		// Matches the adapter contract: a failed dump removes its partial
		// artifact, so nothing for this database reaches outputPath.
		return errors.New("mysqldump exited 2")
	}
	if err := os.WriteFile(outputPath, []byte("-- dump of "+name+"\n"), 0644); err != nil {
		return err
	}
	f.dumped = append(f.dumped, name)
	return nil
}

type fakeStore struct {
	output string
	err    error
	copies int
}

func (f *fakeStore) Name() string { return "fake" }

func (f *fakeStore) EnsureDayDir(ctx context.Context, rc domain.RunContext) error { return nil }

func (f *fakeStore) CopyDayDir(ctx context.Context, rc domain.RunContext) (string, error) {
	f.copies++
	return f.output, f.err
}
