package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikolayk812/storefront-cart/internal/port"
)

// FileSlot keeps each key in <dir>/<key>.json.
type FileSlot struct {
	dir string
}

func NewFileSlot(dir string) (*FileSlot, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}
	return &FileSlot{dir: dir}, nil
}

func (f *FileSlot) Read(_ context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, port.ErrSlotEmpty
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	return data, nil
}

// Write replaces the file atomically via a temp file in the same directory.
func (f *FileSlot) Write(_ context.Context, key string, data []byte) (err error) {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}
	return nil
}

func (f *FileSlot) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("slot key[%s] is not valid", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}
