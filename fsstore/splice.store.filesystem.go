// Package fsstore keeps splice recipes as YAML files in a directory.
//
//	<root>/
//	  greeting.yaml
//	  colors.yaml
package fsstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/itsatony/go-splice"
)

// File layout constants
const (
	FileSuffix  = ".yaml"
	DirPerm     = 0o755
	FilePerm    = 0o644
	tempPattern = ".recipe-*"
)

// Store is a splice.RecipeStore with one file per recipe.
type Store struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

var _ splice.RecipeStore = (*Store)(nil)

// New opens a store rooted at root, creating the directory when missing.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, splice.NewStoreError(splice.ErrMsgStoreRoot, root, nil)
	}
	if err := os.MkdirAll(root, DirPerm); err != nil {
		return nil, splice.NewStoreError(splice.ErrMsgStoreCreateDir, root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the store directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+FileSuffix)
}

// Get reads the recipe file for name.
func (s *Store) Get(ctx context.Context, name string) (*splice.StoredRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := splice.ValidateRecipeName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, splice.NewStoreClosedError()
	}

	path := s.path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, splice.NewRecipeNotFoundError(name)
	}
	if err != nil {
		return nil, splice.NewStoreError(splice.ErrMsgStoreRead, name, err)
	}

	updated := time.Time{}
	if info, err := os.Stat(path); err == nil {
		updated = info.ModTime()
	}
	return &splice.StoredRecipe{Name: name, Source: data, UpdatedAt: updated}, nil
}

// Save writes the recipe through a temporary file so readers never see a
// partial recipe.
func (s *Store) Save(ctx context.Context, recipe *splice.StoredRecipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := splice.ValidateStoredRecipe(recipe); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return splice.NewStoreClosedError()
	}

	tmp, err := os.CreateTemp(s.root, tempPattern)
	if err != nil {
		return splice.NewStoreError(splice.ErrMsgStoreWrite, recipe.Name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(recipe.Source); err != nil {
		tmp.Close()
		return splice.NewStoreError(splice.ErrMsgStoreWrite, recipe.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return splice.NewStoreError(splice.ErrMsgStoreWrite, recipe.Name, err)
	}
	if err := os.Chmod(tmp.Name(), FilePerm); err != nil {
		return splice.NewStoreError(splice.ErrMsgStoreWrite, recipe.Name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(recipe.Name)); err != nil {
		return splice.NewStoreError(splice.ErrMsgStoreWrite, recipe.Name, err)
	}

	recipe.UpdatedAt = time.Now()
	return nil
}

// Delete removes the recipe file for name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := splice.ValidateRecipeName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return splice.NewStoreClosedError()
	}
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return splice.NewRecipeNotFoundError(name)
	}
	if err != nil {
		return splice.NewStoreError(splice.ErrMsgStoreDelete, name, err)
	}
	return nil
}

// List returns the names of the recipe files in the root directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, splice.NewStoreClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, splice.NewStoreError(splice.ErrMsgStoreList, s.root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), FileSuffix) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), FileSuffix)
		if splice.ValidateRecipeName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close marks the store closed. Files are left in place.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
