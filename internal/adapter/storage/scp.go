package storage

import (
	"context"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/argosbackup/argos/internal/config"
	"github.com/argosbackup/argos/internal/domain"
)

// SCPStore pushes the day directory to a remote host over ssh/scp. Both
// binaries are invoked with documented arguments and never reimplemented;
// the remote side is an opaque filesystem.
type SCPStore struct {
	host     string
	basePath string
}

func NewSCP(cfg *config.RemoteConfig) *SCPStore {
	return &SCPStore{host: cfg.Host, basePath: cfg.BasePath}
}

func (s *SCPStore) Name() string {
	return fmt.Sprintf("scp://%s:%s", s.host, s.basePath)
}

// EnsureDayDir creates the remote day directory. A non-zero ssh exit is
// fatal here rather than surfacing later during the copy.
func (s *SCPStore) EnsureDayDir(ctx context.Context, rc domain.RunContext) error {
	args := mkdirArgs(s.host, s.remoteDayPath(rc))
	out, err := exec.CommandContext(ctx, "ssh", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("remote mkdir on %s: %w: %s", s.host, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (s *SCPStore) CopyDayDir(ctx context.Context, rc domain.RunContext) (string, error) {
	args := copyArgs(rc.LocalDayDir, s.host, s.remoteHostPath(rc))
	out, err := exec.CommandContext(ctx, "scp", args...).CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		return output, fmt.Errorf("scp to %s: %w: %s", s.host, err, output)
	}
	return output, nil
}

func (s *SCPStore) remoteHostPath(rc domain.RunContext) string {
	return path.Join(s.basePath, rc.HostDir())
}

func (s *SCPStore) remoteDayPath(rc domain.RunContext) string {
	return path.Join(s.basePath, rc.HostDir(), rc.Weekday)
}

func mkdirArgs(host, remotePath string) []string {
	return []string{host, "mkdir", "-p", remotePath}
}

func copyArgs(localDir, host, remotePath string) []string {
	return []string{"-r", localDir, host + ":" + remotePath + "/"}
}
