// Package contenttype maps entity type tags to persisted content type IDs
// and to the loaders that fetch entities of that type.
package contenttype

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"fieldtrans/internal/logger"
	"fieldtrans/internal/model"
	"fieldtrans/internal/repository"
)

var (
	// ErrMisconfigured means an entity or content type cannot be resolved
	// through the registry. It points at an integration mistake.
	ErrMisconfigured = errors.New("content type misconfigured")
	// ErrObjectNotFound means the loader found no entity for the object ID.
	ErrObjectNotFound = errors.New("object not found")
)

// Entity is anything that owns translatable fields.
type Entity interface {
	ContentTypeKey() model.ContentTypeKey
	PK() int64
	// FieldValue returns the live value of the named field.
	FieldValue(name string) (string, bool)
}

// Loader fetches one entity. It returns nil, nil when the object is missing.
type Loader func(ctx context.Context, objectID int64) (Entity, error)

// Definition registers an entity type.
type Definition struct {
	Key model.ContentTypeKey
	// Fields lists the translatable field names.
	Fields []string
	Load   Loader
}

type registered struct {
	def Definition
	ct  model.ContentType
}

type Registry struct {
	repo repository.ContentTypeRepository

	mu    sync.RWMutex
	byKey map[model.ContentTypeKey]*registered
	byID  map[int64]*registered
}

func NewRegistry(repo repository.ContentTypeRepository) *Registry {
	return &Registry{
		repo:  repo,
		byKey: make(map[model.ContentTypeKey]*registered),
		byID:  make(map[int64]*registered),
	}
}

// Register persists the content type row for def.Key if needed and makes
// the type resolvable by key and by ID.
func (r *Registry) Register(ctx context.Context, def Definition) (model.ContentType, error) {
	if def.Key.AppLabel == "" || def.Key.Model == "" {
		return model.ContentType{}, fmt.Errorf("%w: empty type tag", ErrMisconfigured)
	}
	if def.Load == nil {
		return model.ContentType{}, fmt.Errorf("%w: %s has no loader", ErrMisconfigured, def.Key)
	}

	ct, err := r.repo.GetOrCreate(ctx, def.Key.AppLabel, def.Key.Model)
	if err != nil {
		return model.ContentType{}, fmt.Errorf("register %s: %w", def.Key, err)
	}

	def.Fields = slices.Clone(def.Fields)
	entry := &registered{def: def, ct: ct}

	r.mu.Lock()
	r.byKey[def.Key] = entry
	r.byID[ct.ID] = entry
	r.mu.Unlock()

	logger.Info("content type registered", "module", "contenttype", "action", "register", "resource", "content_type", "result", "ok", "type", def.Key.String(), "id", ct.ID, "fields", def.Fields)
	return ct, nil
}

// ByKey returns the registered content type for key.
func (r *Registry) ByKey(key model.ContentTypeKey) (model.ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byKey[key]
	if !ok {
		return model.ContentType{}, false
	}
	return entry.ct, true
}

// ByID returns the registered content type with id.
func (r *Registry) ByID(id int64) (model.ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byID[id]
	if !ok {
		return model.ContentType{}, false
	}
	return entry.ct, true
}

// Fields returns the translatable fields of key, nil when unregistered.
func (r *Registry) Fields(key model.ContentTypeKey) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byKey[key]
	if !ok {
		return nil
	}
	return slices.Clone(entry.def.Fields)
}

// IsTranslatable reports whether field is listed for key.
func (r *Registry) IsTranslatable(key model.ContentTypeKey, field string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byKey[key]
	return ok && slices.Contains(entry.def.Fields, field)
}

// ContentTypeOf resolves the content type of e. A nil entity, an
// unregistered type or a non-positive primary key is ErrMisconfigured.
func (r *Registry) ContentTypeOf(e Entity) (model.ContentType, error) {
	if e == nil {
		return model.ContentType{}, fmt.Errorf("%w: nil entity", ErrMisconfigured)
	}
	key := e.ContentTypeKey()
	ct, ok := r.ByKey(key)
	if !ok {
		return model.ContentType{}, fmt.Errorf("%w: %s is not registered", ErrMisconfigured, key)
	}
	if e.PK() <= 0 {
		return model.ContentType{}, fmt.Errorf("%w: %s has no identifier", ErrMisconfigured, key)
	}
	return ct, nil
}

// Load fetches objectID of the content type with id contentTypeID.
func (r *Registry) Load(ctx context.Context, contentTypeID, objectID int64) (Entity, error) {
	r.mu.RLock()
	entry, ok := r.byID[contentTypeID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown content type id %d", ErrMisconfigured, contentTypeID)
	}

	e, err := entry.def.Load(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("load %s#%d: %w", entry.def.Key, objectID, err)
	}
	if e == nil {
		return nil, fmt.Errorf("%s#%d: %w", entry.def.Key, objectID, ErrObjectNotFound)
	}
	return e, nil
}
