package splice

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"
)

// recipeNamePattern keeps names safe as file names.
var recipeNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// StoredRecipe is a named recipe source kept by a RecipeStore.
type StoredRecipe struct {
	Name      string    `json:"name"`
	Source    []byte    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeStore keeps recipe sources by name.
// Implementations must be safe for concurrent use.
type RecipeStore interface {
	// Get returns the recipe stored under name.
	Get(ctx context.Context, name string) (*StoredRecipe, error)

	// Save validates the source with LoadRecipe and stores it, replacing any
	// recipe with the same name. UpdatedAt is set by the store.
	Save(ctx context.Context, recipe *StoredRecipe) error

	// Delete removes the recipe stored under name.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases resources. Calls after Close fail with store_closed.
	Close() error
}

// ValidateRecipeName rejects names that are not safe as file names.
func ValidateRecipeName(name string) error {
	if !recipeNamePattern.MatchString(name) {
		return NewInvalidRecipeNameError(name)
	}
	return nil
}

// ValidateStoredRecipe checks the name and loads the source. Stores call it
// before saving.
func ValidateStoredRecipe(recipe *StoredRecipe) error {
	if err := ValidateRecipeName(recipe.Name); err != nil {
		return err
	}
	_, err := LoadRecipe(recipe.Source)
	return err
}

func copyStoredRecipe(r *StoredRecipe) *StoredRecipe {
	return &StoredRecipe{
		Name:      r.Name,
		Source:    append([]byte(nil), r.Source...),
		UpdatedAt: r.UpdatedAt,
	}
}

// RunStored loads the named recipe from store and runs it.
func (e *Engine) RunStored(ctx context.Context, store RecipeStore, name string) (RichText, error) {
	stored, err := store.Get(ctx, name)
	if err != nil {
		return RichText{}, err
	}
	recipe, err := LoadRecipe(stored.Source)
	if err != nil {
		return RichText{}, err
	}
	e.logger.Debug(LogMsgRecipeLoaded, zap.String(LogFieldRecipe, name))
	return e.RunRecipe(recipe)
}
