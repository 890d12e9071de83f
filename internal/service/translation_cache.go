package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"fieldtrans/internal/cache"
	"fieldtrans/internal/contenttype"
	"fieldtrans/internal/logger"
	"fieldtrans/internal/model"
)

// Absent is cached when a field has no usable translation, meaning the
// resolved value is the entity's live field value.
const Absent = "\x00absent"

// TranslationCache keeps resolved field values keyed by
// prefix, language, app label, model, field and object ID.
type TranslationCache struct {
	store    cache.Store
	registry *contenttype.Registry
	prefix   string
	ttl      time.Duration

	// mu orders Invalidate against SetIfCurrent. gens counts the
	// invalidations seen per key.
	mu   sync.Mutex
	gens map[string]uint64
}

func NewTranslationCache(store cache.Store, registry *contenttype.Registry, prefix string, ttl time.Duration) *TranslationCache {
	return &TranslationCache{
		store:    store,
		registry: registry,
		prefix:   prefix,
		ttl:      ttl,
		gens:     make(map[string]uint64),
	}
}

// Key builds the cache key of one field value.
func (c *TranslationCache) Key(language string, ct model.ContentTypeKey, field string, objectID int64) string {
	var b strings.Builder
	b.WriteString(c.prefix)
	for _, part := range []string{language, ct.AppLabel, ct.Model, field, strconv.FormatInt(objectID, 10)} {
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}

// Get returns the cached value of e's field in language. A nil entity is a miss.
func (c *TranslationCache) Get(e contenttype.Entity, field, language string) (string, bool) {
	if e == nil {
		return "", false
	}
	return c.store.Get(c.Key(language, e.ContentTypeKey(), field, e.PK()))
}

func (c *TranslationCache) Set(e contenttype.Entity, field, value, language string) {
	if e == nil {
		return
	}
	c.store.Set(c.Key(language, e.ContentTypeKey(), field, e.PK()), value, c.ttl)
}

// Generation returns the invalidation count of e's field in language.
// Take it before reading the store and hand it to SetIfCurrent.
func (c *TranslationCache) Generation(e contenttype.Entity, field, language string) uint64 {
	if e == nil {
		return 0
	}
	key := c.Key(language, e.ContentTypeKey(), field, e.PK())
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// SetIfCurrent caches value unless the key was invalidated after gen was
// taken. It reports whether the value was stored.
func (c *TranslationCache) SetIfCurrent(e contenttype.Entity, field, value, language string, gen uint64) bool {
	if e == nil {
		return false
	}
	key := c.Key(language, e.ContentTypeKey(), field, e.PK())
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		logger.Debug("translation cache write skipped", "module", "service", "action", "save", "resource", "cache", "result", "skipped", "key", key)
		return false
	}
	c.store.Set(key, value, c.ttl)
	return true
}

// Invalidate clears the entry a translated field row feeds. It has the
// repository.SaveHook signature and runs right after each committed write.
func (c *TranslationCache) Invalidate(_ context.Context, row model.TranslatedField) {
	ct, ok := c.registry.ByID(row.ContentTypeID)
	if !ok {
		logger.Warn("translation cache invalidate skipped", "module", "service", "action", "invalidate", "resource", "cache", "result", "failed", "content_type_id", row.ContentTypeID, "error", ErrMisconfigured)
		return
	}
	key := c.Key(row.Language, ct.Key(), row.FieldName, row.ObjectID)
	c.mu.Lock()
	c.gens[key]++
	c.store.Delete(key)
	c.mu.Unlock()
	logger.Debug("translation cache invalidated", "module", "service", "action", "invalidate", "resource", "cache", "result", "ok", "key", key)
}
