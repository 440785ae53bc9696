package blobstore

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hupe1980/bitview/internal/closer"
	"github.com/hupe1980/bitview/internal/fs"
	"github.com/hupe1980/bitview/internal/mmap"
)

const tempPrefix = ".tmp-"

// LocalStore implements Store using the local file system.
type LocalStore struct {
	root string
	perm os.FileMode
	fsys fs.FileSystem
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return newLocalStore(root, fs.Default)
}

func newLocalStore(root string, fsys fs.FileSystem) *LocalStore {
	return &LocalStore{root: root, perm: 0o644, fsys: fsys}
}

// Root returns the directory blobs are stored under.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) path(name string) (string, error) {
	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.root, filepath.FromSlash(name)), nil
}

// Put writes data to a temp file in the target directory, syncs it and
// renames it into place.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := s.fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := s.fsys.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = s.fsys.Remove(tmp)
		}
	}()

	if err := writeAndSync(f, data); err != nil {
		return err
	}
	if err := s.fsys.Chmod(tmp, s.perm); err != nil {
		return err
	}
	return s.fsys.Rename(tmp, path)
}

func writeAndSync(f fs.File, data []byte) (err error) {
	defer closer.Close(f, &err)

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

// Get maps the blob read-only and copies it out.
func (s *LocalStore) Get(ctx context.Context, name string) (data []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close(m, &err)

	_ = m.Advise(mmap.AccessSequential)

	src := m.Bytes()
	data = make([]byte, len(src))
	copy(data, src)
	return data, nil
}

// Delete removes a blob.
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fsys.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return err
	}
	return nil
}

// List walks the root and returns matching blob names.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	names := []string{}
	err := filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) && path == s.root {
				return filepath.SkipDir
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}
