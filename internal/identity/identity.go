package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
)

const tokenLength = 8

// Resolve returns the persisted machine token, generating and persisting a
// new one on first run. The returned bool reports whether the token was
// created by this call. While the file exists the token is never regenerated,
// so a host keeps one backup namespace for its whole history.
func Resolve(path string) (token string, created bool, err error) {
	data, err := os.ReadFile(path)
	if err == nil {
		token = strings.TrimSpace(string(data))
		if token == "" {
			return "", false, fmt.Errorf("identity file %s is empty", path)
		}
		return token, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("read identity file: %w", err)
	}

	token = strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return "", false, fmt.Errorf("persist identity file: %w", err)
	}

	return token, true, nil
}
