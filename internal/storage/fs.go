package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cheatsheeter/cheatsheeter/internal/models"
)

// FS implements Provider backed by a single local directory.
type FS struct {
	root string // absolute, symlink-resolved path to the store directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist. The root is canonicalized once so that
// later containment checks compare against the real directory.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", resolved)
	}
	return &FS{root: resolved}, nil
}

// resolve maps a cheatsheet name to its absolute file path. Names that fail
// the identifier rules are rejected before any filesystem access, and the
// joined path must be a direct child of the store root.
func (f *FS) resolve(name string) (string, error) {
	if err := models.ValidateName(name); err != nil {
		return "", err
	}
	abs := filepath.Join(f.root, name+FileExt)
	if filepath.Dir(abs) != f.root {
		return "", fmt.Errorf("storage: path escapes store root: %s", name)
	}
	return abs, nil
}

// List returns the names of stored cheatsheets: regular files carrying the
// .yaml extension whose stem passes the identifier rules. Subdirectories,
// temp files, and foreign files are skipped. Names come back sorted.
func (f *FS) List() ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), FileExt) {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), FileExt)
		if models.ValidateName(stem) != nil {
			continue
		}
		names = append(names, stem)
	}
	// ReadDir orders by filename; the stem order can differ once the
	// extension is stripped ("git.yaml" sorts after "git-commands.yaml"
	// but "git" sorts before "git-commands").
	sort.Strings(names)
	return names, nil
}

// Read returns the raw bytes of the named cheatsheet.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically replaces content: tmp file → fsync → rename.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.resolve(name)
	if err != nil {
		return err
	}
	tmpName, err := f.writeTemp(content)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, abs); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}

// Create atomically publishes a new file: tmp file → fsync → hard link to the
// destination. Linking fails with os.ErrExist when the name is taken, which
// makes create-if-absent a single filesystem operation instead of an
// existence check racing a write.
func (f *FS) Create(name string, content []byte) error {
	abs, err := f.resolve(name)
	if err != nil {
		return err
	}
	tmpName, err := f.writeTemp(content)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpName) }()
	if err := os.Link(tmpName, abs); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("storage: create %s: %w", name, os.ErrExist)
		}
		return fmt.Errorf("storage: link: %w", err)
	}
	return nil
}

// Delete removes the named cheatsheet file.
func (f *FS) Delete(name string) error {
	abs, err := f.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

// Exists reports whether the named cheatsheet file is present.
func (f *FS) Exists(name string) (bool, error) {
	abs, err := f.resolve(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("storage: stat %s: %w", name, err)
	}
	return true, nil
}

// writeTemp writes content to a fsync'd temp file inside the store root and
// returns its path. The temp name never ends in .yaml, so List and the
// watcher skip it. Callers rename or link it into place.
func (f *FS) writeTemp(content []byte) (string, error) {
	tmp, err := os.CreateTemp(f.root, ".cheatsheet-*.tmp")
	if err != nil {
		return "", fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return "", fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: close temp: %w", err)
	}
	success = true
	return tmpName, nil
}
