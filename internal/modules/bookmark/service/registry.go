package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"formnav/internal/modules/bookmark/domain"
	bookmarkout "formnav/internal/modules/bookmark/port/out"
	apperrors "formnav/internal/platform/errors"
)

// Registry owns the in-memory bookmark list for a host session and writes
// the full list through to the store after every mutation.
//
// Reads never wait on a save. Saves are serialized and always write the
// latest list, so a slow save cannot be overtaken by an older snapshot.
type Registry struct {
	store    bookmarkout.Store
	defaults domain.List
	logger   *zap.Logger

	mu        sync.RWMutex
	items     domain.List
	loaded    bool
	version   uint64
	persisted uint64

	saveMu sync.Mutex
}

func NewRegistry(store bookmarkout.Store, defaults domain.List, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{store: store, defaults: defaults.Clone(), logger: logger.Named("registry")}
}

// Initialize loads the list on first call and returns the in-memory list on
// every later call.
func (r *Registry) Initialize(ctx context.Context) (domain.List, error) {
	r.mu.RLock()
	if r.loaded {
		list := r.items.Clone()
		r.mu.RUnlock()
		return list, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.items.Clone(), nil
	}
	list, err := r.store.Load(ctx, r.defaults.Clone())
	if err != nil {
		r.logger.Error("load bookmarks", zap.Error(err))
		return nil, fmt.Errorf("%w: load bookmarks: %w", apperrors.ErrPersistence, err)
	}
	r.items = list.Clone()
	r.loaded = true
	r.version, r.persisted = 0, 0
	r.logger.Debug("bookmarks loaded", zap.Int("count", len(list)))
	return list.Clone(), nil
}

func (r *Registry) List(ctx context.Context) (domain.List, error) {
	return r.Initialize(ctx)
}

func (r *Registry) Get(ctx context.Context, index int) (domain.Bookmark, error) {
	list, err := r.Initialize(ctx)
	if err != nil {
		return domain.Bookmark{}, err
	}
	if err := list.CheckIndex(index); err != nil {
		r.logIndexError("get", err, len(list))
		return domain.Bookmark{}, err
	}
	return list[index], nil
}

func (r *Registry) Add(ctx context.Context, label, fragment string) (domain.List, error) {
	b, err := domain.New(label, fragment)
	if err != nil {
		return nil, err
	}
	return r.mutate(ctx, "add", func(cur domain.List) (domain.List, error) {
		return cur.Append(b), nil
	})
}

func (r *Registry) Edit(ctx context.Context, index int, label, fragment string) (domain.List, error) {
	b, err := domain.New(label, fragment)
	if err != nil {
		return nil, err
	}
	return r.mutate(ctx, "edit", func(cur domain.List) (domain.List, error) {
		return cur.Replace(index, b)
	})
}

func (r *Registry) Remove(ctx context.Context, index int) (domain.List, error) {
	return r.mutate(ctx, "remove", func(cur domain.List) (domain.List, error) {
		return cur.Remove(index)
	})
}

// Save is the single entry point for panel forms.
func (r *Registry) Save(ctx context.Context, req domain.SaveRequest, label, fragment string) (domain.List, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Kind == domain.SaveKindEdit {
		return r.Edit(ctx, req.Index, label, fragment)
	}
	return r.Add(ctx, label, fragment)
}

// Sync retries persisting the current list after an earlier save failed.
// It is a no-op when the store already holds the latest list.
func (r *Registry) Sync(ctx context.Context) (domain.List, error) {
	list, err := r.Initialize(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.persist(ctx); err != nil {
		return list, err
	}
	return r.Initialize(ctx)
}

// Dirty reports whether the in-memory list has changes the store has not
// accepted yet.
func (r *Registry) Dirty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded && r.version != r.persisted
}

// Close flushes pending changes and drops the in-memory list; the next call
// reloads from the store. A mutation that lands during the flush is flushed
// too before the list is dropped.
func (r *Registry) Close(ctx context.Context) error {
	r.saveMu.Lock()
	defer r.saveMu.Unlock()
	for {
		if err := r.persistLocked(ctx); err != nil {
			return err
		}
		r.mu.Lock()
		if r.version == r.persisted {
			r.items, r.loaded = nil, false
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()
	}
}

func (r *Registry) mutate(ctx context.Context, op string, apply func(domain.List) (domain.List, error)) (domain.List, error) {
	for {
		if _, err := r.Initialize(ctx); err != nil {
			return nil, err
		}

		r.mu.Lock()
		if !r.loaded {
			// Close dropped the list after Initialize returned.
			r.mu.Unlock()
			continue
		}
		next, err := apply(r.items)
		if err != nil {
			length := len(r.items)
			r.mu.Unlock()
			r.logIndexError(op, err, length)
			return nil, err
		}
		r.items = next
		r.version++
		snapshot := next.Clone()
		r.mu.Unlock()

		if err := r.persist(ctx); err != nil {
			return snapshot, err
		}
		return snapshot, nil
	}
}

func (r *Registry) persist(ctx context.Context) error {
	r.saveMu.Lock()
	defer r.saveMu.Unlock()
	return r.persistLocked(ctx)
}

// persistLocked requires saveMu.
func (r *Registry) persistLocked(ctx context.Context) error {
	r.mu.RLock()
	if !r.loaded || r.version == r.persisted {
		r.mu.RUnlock()
		return nil
	}
	version := r.version
	snapshot := r.items.Clone()
	r.mu.RUnlock()

	if err := r.store.Save(ctx, snapshot); err != nil {
		r.logger.Error("persist bookmarks", zap.Error(err), zap.Int("count", len(snapshot)), zap.Uint64("version", version))
		return fmt.Errorf("%w: save bookmarks: %w", apperrors.ErrPersistence, err)
	}

	r.mu.Lock()
	r.persisted = version
	r.mu.Unlock()
	return nil
}

func (r *Registry) logIndexError(op string, err error, length int) {
	if !errors.Is(err, apperrors.ErrIndexOutOfRange) {
		return
	}
	r.logger.Warn("bookmark index out of range; panel is out of sync", zap.String("op", op), zap.Int("length", length), zap.Error(err))
}
