// Package journal maintains the operator-facing run logs: plain text files of
// timestamped lines, one for successes and one for failures, trimmed to a
// bounded number of most-recent lines after each run.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

const timeLayout = "2006-01-02 15:04:05"

type Journal struct {
	path string
	echo bool
	tint *color.Color
}

// New returns a journal appending to path. When echo is set, every appended
// line is also printed to the console in the given color.
func New(path string, echo bool, tint *color.Color) *Journal {
	if tint == nil {
		tint = color.New(color.Reset)
	}
	return &Journal{path: path, echo: echo, tint: tint}
}

func (j *Journal) Path() string { return j.path }

// Append writes one "[timestamp] message" line.
func (j *Journal) Append(message string) error {
	line := fmt.Sprintf("[%s] %s", time.Now().Format(timeLayout), message)

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open journal %s: %w", j.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append to journal %s: %w", j.path, err)
	}

	if j.echo {
		j.tint.Println(line)
	}

	return nil
}

// Trim rewrites the file at path to contain only its last maxLines lines.
// The full content is read into memory first and the suffix is written to a
// temp file that replaces the original by rename, so the file is never
// truncated while still being read. A missing file is not an error.
func Trim(path string, maxLines int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read journal %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= maxLines {
		return nil
	}
	kept := lines[len(lines)-maxLines:]

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".trim-*")
	if err != nil {
		return fmt.Errorf("create temp journal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.Join(kept, "\n") + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp journal: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace journal %s: %w", path, err)
	}

	return nil
}
