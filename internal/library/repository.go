package library

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"recipesaver/internal/config"
	"recipesaver/internal/logging"
	"recipesaver/internal/recipe"
	"recipesaver/internal/store"
)

// Repository holds the authoritative in-memory copy of the recipe
// collection, newest first, and writes through to the store on every
// mutation.
type Repository struct {
	mu      sync.Mutex
	store   *store.Store
	lock    *flock.Flock
	logger  *slog.Logger
	recipes []recipe.Recipe

	now   func() time.Time
	newID func() string
}

// Option customizes a Repository, mainly for tests.
type Option func(*Repository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides how new record ids are produced.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// Open acquires the data-directory lock, loads the persisted collection, and
// returns the ready repository. Callers must Close it to release the lock.
func Open(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger, opts ...Option) (*Repository, error) {
	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "recipesaver.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("data directory %s is locked by another recipesaver process", cfg.Paths.DataDir)
	}

	repo := &Repository{
		store:  st,
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "library"),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(repo)
	}

	recipes, err := st.Load(ctx)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("load collection: %w", err)
	}
	repo.recipes = recipes

	return repo, nil
}

// Close releases the data-directory lock. The store is closed separately by
// whoever opened it.
func (r *Repository) Close() error {
	if r == nil || r.lock == nil {
		return nil
	}
	return r.lock.Unlock()
}

// Recipes returns a snapshot copy of the collection, newest first.
func (r *Repository) Recipes() []recipe.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshot(r.recipes)
}

// Len reports the number of stored recipes.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recipes)
}

// Get returns a copy of the record with the given id.
func (r *Repository) Get(id string) (recipe.Recipe, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.recipes {
		if rec.ID == id {
			return rec.Clone(), true
		}
	}
	return recipe.Recipe{}, false
}

// Add assigns identity and lifecycle fields to the draft and prepends the
// resulting record. The draft's content is taken as-is; title validation is
// the form boundary's job, not this layer's.
func (r *Repository) Add(ctx context.Context, draft recipe.Draft) (recipe.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := recipe.Recipe{
		ID:          r.newID(),
		Title:       draft.Title,
		URL:         draft.URL,
		ImageURL:    draft.ImageURL,
		Description: draft.Description,
		Ingredients: draft.Ingredients,
		Steps:       draft.Steps,
		Tags:        draft.Tags,
		Rating:      draft.Rating,
		Memo:        draft.Memo,
		CreatedAt:   r.now(),
		IsFavorite:  false,
		ViewCount:   0,
	}
	rec.Normalize()

	next := make([]recipe.Recipe, 0, len(r.recipes)+1)
	next = append(next, rec)
	next = append(next, r.recipes...)

	if err := r.persist(ctx, next); err != nil {
		return recipe.Recipe{}, err
	}

	r.logger.Info("added recipe",
		logging.String(logging.FieldRecipeID, rec.ID),
		logging.String("title", rec.Title))
	return rec.Clone(), nil
}

// Update wholly replaces the record whose id matches. The caller is
// responsible for preserving id and createdAt; no re-stamping occurs here.
// A missing id changes nothing and reports found=false.
func (r *Repository) Update(ctx context.Context, rec recipe.Recipe) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(rec.ID)
	if idx < 0 {
		return false, nil
	}

	rec.Normalize()
	next := snapshot(r.recipes)
	next[idx] = rec

	if err := r.persist(ctx, next); err != nil {
		return false, err
	}

	r.logger.Info("updated recipe", logging.String(logging.FieldRecipeID, rec.ID))
	return true, nil
}

// Delete removes the record with the given id. Absent ids are a no-op.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]recipe.Recipe, 0, len(r.recipes)-1)
	next = append(next, r.recipes[:idx]...)
	next = append(next, r.recipes[idx+1:]...)

	if err := r.persist(ctx, next); err != nil {
		return false, err
	}

	r.logger.Info("deleted recipe", logging.String(logging.FieldRecipeID, id))
	return true, nil
}

// ToggleFavorite flips the favorite flag and returns the updated record.
// Absent ids are a no-op.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) (recipe.Recipe, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return recipe.Recipe{}, false, nil
	}

	next := snapshot(r.recipes)
	next[idx].IsFavorite = !next[idx].IsFavorite

	if err := r.persist(ctx, next); err != nil {
		return recipe.Recipe{}, false, err
	}

	return next[idx].Clone(), true, nil
}

// IncrementViewCount bumps the view counter by one and returns the updated
// record. Absent ids are a no-op.
func (r *Repository) IncrementViewCount(ctx context.Context, id string) (recipe.Recipe, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return recipe.Recipe{}, false, nil
	}

	next := snapshot(r.recipes)
	next[idx].ViewCount++

	if err := r.persist(ctx, next); err != nil {
		return recipe.Recipe{}, false, err
	}

	return next[idx].Clone(), true, nil
}

// indexOf must be called with the mutex held.
func (r *Repository) indexOf(id string) int {
	for i, rec := range r.recipes {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the candidate collection through to the store and installs
// it in memory only on success. Must be called with the mutex held.
func (r *Repository) persist(ctx context.Context, next []recipe.Recipe) error {
	if err := r.store.Save(ctx, next); err != nil {
		r.logger.Error("persist collection", logging.Error(err))
		return fmt.Errorf("persist collection: %w", err)
	}
	r.recipes = next
	return nil
}

func snapshot(recipes []recipe.Recipe) []recipe.Recipe {
	out := make([]recipe.Recipe, len(recipes))
	for i, rec := range recipes {
		out[i] = rec.Clone()
	}
	return out
}
