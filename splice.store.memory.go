package splice

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRecipeStore is an in-memory RecipeStore, mostly for tests and
// embedding fixed recipe sets.
type MemoryRecipeStore struct {
	mu      sync.RWMutex
	recipes map[string]*StoredRecipe
	closed  bool
}

// NewMemoryRecipeStore creates an empty in-memory store.
func NewMemoryRecipeStore() *MemoryRecipeStore {
	return &MemoryRecipeStore{recipes: make(map[string]*StoredRecipe)}
}

// Get returns a copy of the recipe stored under name.
func (s *MemoryRecipeStore) Get(ctx context.Context, name string) (*StoredRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}
	r, ok := s.recipes[name]
	if !ok {
		return nil, NewRecipeNotFoundError(name)
	}
	return copyStoredRecipe(r), nil
}

// Save stores a copy of recipe.
func (s *MemoryRecipeStore) Save(ctx context.Context, recipe *StoredRecipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateStoredRecipe(recipe); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	recipe.UpdatedAt = time.Now()
	s.recipes[recipe.Name] = copyStoredRecipe(recipe)
	return nil
}

// Delete removes the recipe stored under name.
func (s *MemoryRecipeStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	if _, ok := s.recipes[name]; !ok {
		return NewRecipeNotFoundError(name)
	}
	delete(s.recipes, name)
	return nil
}

// List returns the stored names in sorted order.
func (s *MemoryRecipeStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}
	names := make([]string, 0, len(s.recipes))
	for name := range s.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close drops all recipes.
func (s *MemoryRecipeStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.recipes = nil
	return nil
}
