package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ext = ".json"

// Dir stores each slot as <path>/<key>.json.
//
// The folder is created on the first write. Writes go through a temporary
// file renamed over the previous one, so a slot is never left half written.
type Dir struct {
	path string
}

// NewDir returns a store rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the root folder of the store.
func (d *Dir) Path() string { return d.path }

func (d *Dir) filename(key string) string {
	return filepath.Join(d.path, key+ext)
}

func (d *Dir) GetItem(key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	content, err := os.ReadFile(d.filename(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cannot read slot %q: %w", key, err)
	}
	return string(content), true, nil
}

func (d *Dir) SetItem(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return fmt.Errorf("could not create store directory %q: %w", d.path, err)
	}
	tmp, err := os.CreateTemp(d.path, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("cannot write slot %q: %w", key, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write slot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write slot %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), d.filename(key)); err != nil {
		return fmt.Errorf("cannot write slot %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes the slot file. Removing a missing key is not an error.
func (d *Dir) RemoveItem(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := os.Remove(d.filename(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot remove slot %q: %w", key, err)
	}
	return nil
}

// Keys lists the slots present in the folder, sorted.
func (d *Dir) Keys() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot list store %q: %w", d.path, err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	sort.Strings(keys)
	return keys, nil
}
