package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirClient serves resources from a local directory laid out like the
// storage container.
type DirClient struct {
	root string
}

// NewDirClient creates a DirClient rooted at dir.
func NewDirClient(dir string) *DirClient {
	return &DirClient{root: dir}
}

// Fetch reads root/path. A missing file maps to ErrNotFound.
func (c *DirClient) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full := filepath.Join(c.root, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
