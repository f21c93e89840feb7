// Package artifact publishes compiled scripts to a local directory or an
// S3-compatible bucket.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Sink stores one compiled script under name and returns where it went.
type Sink interface {
	Put(ctx context.Context, name string, script []byte) (string, error)
}

// FileSink writes scripts below a directory.
type FileSink struct {
	Dir string
}

// Put writes script to <Dir>/<name>, creating parent directories.
func (s *FileSink) Put(_ context.Context, name string, script []byte) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(s.Dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}
	if err := os.WriteFile(dest, script, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return dest, nil
}

// cleanName normalizes an artifact name to a relative slash path that cannot
// escape the sink root.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return "", fmt.Errorf("artifact name is required")
	}
	clean := path.Clean("/" + name)[1:]
	if clean == "" {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	return clean, nil
}
