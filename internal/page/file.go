package page

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileLoader loads saved HTML snapshots from disk
type FileLoader struct{}

// Load reads and parses the HTML file at path
func (FileLoader) Load(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return ParseString(Decode(raw, ""), "file://"+filepath.ToSlash(abs))
}
