package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ExtractPassword scans a mysql defaults-style file for the first
// password=value line and returns the value. The file itself is later handed
// to mysqldump as its defaults-extra-file; the value extracted here is kept
// in memory only, for the client connection.
func ExtractPassword(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open credentials file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == "password" {
			return strings.TrimSpace(value), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read credentials file: %w", err)
	}

	return "", fmt.Errorf("no password entry in %s", path)
}
