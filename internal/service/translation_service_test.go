package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fieldtrans/internal/cache"
	"fieldtrans/internal/contenttype"
	"fieldtrans/internal/locale"
	"fieldtrans/internal/model"
	"fieldtrans/internal/repository"
	"fieldtrans/internal/repository/mock"
	"fieldtrans/internal/repository/testutil"
	"fieldtrans/internal/service"
)

type harness struct {
	db           *sql.DB
	store        *cache.Memory
	registry     *contenttype.Registry
	cache        *service.TranslationCache
	translations service.TranslationService
	products     service.ProductService
	productType  model.ContentType
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewTestDB(t)
	registry := contenttype.NewRegistry(repository.NewContentTypeRepository(db))
	store := cache.NewMemory()
	tcache := service.NewTranslationCache(store, registry, "test", 30*time.Minute)
	repo := repository.NewTranslatedFieldRepository(db, tcache.Invalidate)
	matcher := locale.NewMatcher([]string{"en-us", "pt-br"}, "en-us")
	translations := service.NewTranslationService(repo, registry, tcache, matcher)
	products := service.NewProductService(repository.NewProductRepository(db), translations)

	ct, err := registry.Register(context.Background(), products.Definition())
	require.NoError(t, err)

	return &harness{
		db:           db,
		store:        store,
		registry:     registry,
		cache:        tcache,
		translations: translations,
		products:     products,
		productType:  ct,
	}
}

func (h *harness) product(t *testing.T, id int64, description string) *model.Product {
	t.Helper()
	testutil.SeedProduct(t, h.db, id, "Chair", description)
	p, err := h.products.Get(context.Background(), id)
	require.NoError(t, err)
	return &p
}

func ptBR() context.Context {
	return locale.WithLanguage(context.Background(), "pt-br")
}

func TestResolve_NoRowReturnsLiveValue(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, "A wooden chair")

	got, err := h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "A wooden chair", got)
}

func TestResolve_ProductScenario(t *testing.T) {
	h := newHarness(t)
	ctx := ptBR()
	p := h.product(t, 42, "A wooden chair")

	got, err := h.translations.Resolve(ctx, p, "description")
	require.NoError(t, err)
	require.Equal(t, "A wooden chair", got)

	_, err = h.translations.SaveEditor(ctx, h.productType.ID, 42, "description", []service.LanguageValue{
		{Language: "pt-br", Value: "Descrição traduzida"},
	})
	require.NoError(t, err)

	got, err = h.translations.Resolve(ctx, p, "description")
	require.NoError(t, err)
	require.Equal(t, "Descrição traduzida", got)

	_, err = h.translations.SaveEditor(ctx, h.productType.ID, 42, "description", []service.LanguageValue{
		{Language: "pt-br", Value: ""},
	})
	require.NoError(t, err)

	got, err = h.translations.Resolve(ctx, p, "description")
	require.NoError(t, err)
	require.Equal(t, "A wooden chair", got)
}

func TestResolve_SecondCallIsCacheHit(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, "A wooden chair")
	testutil.SeedTranslation(t, h.db, "pt-br", h.productType.ID, 42, "description", "Cadeira")

	first, err := h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	hits := h.store.Stats().Hits

	second, err := h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, hits+1, h.store.Stats().Hits)
}

func TestResolve_WriteInvalidatesCache(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, "A wooden chair")
	testutil.SeedTranslation(t, h.db, "pt-br", h.productType.ID, 42, "description", "Cadeira")

	got, err := h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "Cadeira", got)

	_, err = h.translations.SaveEditor(ptBR(), h.productType.ID, 42, "description", []service.LanguageValue{
		{Language: "pt-br", Value: "Cadeira de carvalho"},
	})
	require.NoError(t, err)

	got, err = h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "Cadeira de carvalho", got)
}

func TestResolve_WhitespaceTranslationFallsBack(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, "A wooden chair")
	testutil.SeedTranslation(t, h.db, "pt-br", h.productType.ID, 42, "description", "  \n\t")

	got, err := h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "A wooden chair", got)

	key := h.cache.Key("pt-br", model.ProductContentType, "description", 42)
	cached, ok := h.store.Get(key)
	require.True(t, ok)
	require.Equal(t, service.Absent, cached)
}

func TestResolve_AbsentFollowsLiveValue(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, "A wooden chair")

	_, err := h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)

	p.Description = "An oak chair"
	got, err := h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "An oak chair", got)
}

func TestResolve_LanguagesAreIndependent(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, "A wooden chair")
	testutil.SeedTranslation(t, h.db, "pt-br", h.productType.ID, 42, "description", "Cadeira")

	got, err := h.translations.Resolve(context.Background(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "A wooden chair", got, "default language has no row")

	got, err = h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "Cadeira", got)
}

func TestResolve_RewritesStaticPaths(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, `<img src="/static/img/chair.png">`)

	got, err := h.translations.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, `<img src="/static/pt-br/img/chair.png">`, got)

	testutil.SeedTranslation(t, h.db, "en-us", h.productType.ID, 42, "description", `<a href="/static/manual.pdf">Manual</a>`)
	got, err = h.translations.Resolve(context.Background(), p, "description")
	require.NoError(t, err)
	require.Equal(t, `<a href="/static/en-us/manual.pdf">Manual</a>`, got)

	// Served from cache, still rewritten once.
	got, err = h.translations.Resolve(context.Background(), p, "description")
	require.NoError(t, err)
	require.Equal(t, `<a href="/static/en-us/manual.pdf">Manual</a>`, got)
}

type unregistered struct{}

func (unregistered) ContentTypeKey() model.ContentTypeKey {
	return model.ContentTypeKey{AppLabel: "blog", Model: "post"}
}
func (unregistered) PK() int64 { return 1 }
func (unregistered) FieldValue(string) (string, bool) {
	return "x", true
}

func TestResolve_Misconfigured(t *testing.T) {
	h := newHarness(t)

	_, err := h.translations.Resolve(ptBR(), unregistered{}, "title")
	require.ErrorIs(t, err, service.ErrMisconfigured)

	_, err = h.translations.Resolve(ptBR(), nil, "title")
	require.ErrorIs(t, err, service.ErrMisconfigured)
}

func TestResolve_UnknownField(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, "A wooden chair")

	_, err := h.translations.Resolve(ptBR(), p, "price")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestResolve_StoreErrorIsNotCached(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	repo := mock.NewMockTranslatedFieldRepository(ctrl)
	svc := service.NewTranslationService(repo, h.registry, h.cache, locale.NewMatcher([]string{"pt-br"}, "pt-br"))
	p := &model.Product{ID: 42, Description: "A wooden chair"}

	repo.EXPECT().Get(gomock.Any(), repository.TranslationKey{
		Language:      "pt-br",
		ContentTypeID: h.productType.ID,
		ObjectID:      42,
		FieldName:     "description",
	}).Return(nil, errors.New("disk I/O error"))

	_, err := svc.Resolve(ptBR(), p, "description")
	require.Error(t, err)
	require.Equal(t, 0, h.store.Len())
}

func TestOpenEditor_CreatesRowPerLanguage(t *testing.T) {
	h := newHarness(t)
	h.product(t, 42, "A wooden chair")
	testutil.SeedTranslation(t, h.db, "pt-br", h.productType.ID, 42, "description", "Cadeira")

	editor, err := h.translations.OpenEditor(ptBR(), h.productType.ID, 42, "description")
	require.NoError(t, err)
	require.Equal(t, "A wooden chair", editor.Original)
	require.Len(t, editor.Rows, 2)
	require.Equal(t, "en-us", editor.Rows[0].Language)
	require.Equal(t, "", editor.Rows[0].Value)
	require.Equal(t, "pt-br", editor.Rows[1].Language)
	require.Equal(t, "Cadeira", editor.Rows[1].Value)

	again, err := h.translations.OpenEditor(ptBR(), h.productType.ID, 42, "description")
	require.NoError(t, err)
	require.Equal(t, editor.Rows[0].ID, again.Rows[0].ID)

	var count int
	require.NoError(t, h.db.QueryRow(`SELECT COUNT(*) FROM translated_fields`).Scan(&count))
	require.Equal(t, 2, count)
}

func TestOpenEditor_Errors(t *testing.T) {
	h := newHarness(t)
	h.product(t, 42, "A wooden chair")

	_, err := h.translations.OpenEditor(ptBR(), h.productType.ID, 7, "description")
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = h.translations.OpenEditor(ptBR(), h.productType.ID, 42, "price")
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = h.translations.OpenEditor(ptBR(), h.productType.ID+1, 42, "description")
	require.ErrorIs(t, err, service.ErrMisconfigured)
}

func TestSaveEditor_Validation(t *testing.T) {
	h := newHarness(t)
	h.product(t, 42, "A wooden chair")

	_, err := h.translations.SaveEditor(ptBR(), h.productType.ID, 42, "description", nil)
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = h.translations.SaveEditor(ptBR(), h.productType.ID, 42, "description", []service.LanguageValue{
		{Language: "fr", Value: "Chaise"},
	})
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = h.translations.SaveEditor(ptBR(), h.productType.ID, 42, "description", []service.LanguageValue{
		{Language: "pt-br", Value: "a"},
		{Language: "PT_BR", Value: "b"},
	})
	require.ErrorIs(t, err, service.ErrInvalid)

	saved, err := h.translations.SaveEditor(ptBR(), h.productType.ID, 42, "description", []service.LanguageValue{
		{Language: "PT_BR", Value: "Cadeira"},
		{Language: "en-us", Value: "Chair"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Equal(t, "pt-br", saved[0].Language)
}

func TestTranslationCache_KeyAndInvalidate(t *testing.T) {
	h := newHarness(t)
	p := &model.Product{ID: 42}

	require.Equal(t, "test:pt-br:catalog:product:description:42", h.cache.Key("pt-br", model.ProductContentType, "description", 42))

	h.cache.Set(p, "description", "Cadeira", "pt-br")
	got, ok := h.cache.Get(p, "description", "pt-br")
	require.True(t, ok)
	require.Equal(t, "Cadeira", got)

	h.cache.Invalidate(context.Background(), model.TranslatedField{
		Language: "pt-br", ContentTypeID: h.productType.ID, ObjectID: 42, FieldName: "description",
	})
	_, ok = h.cache.Get(p, "description", "pt-br")
	require.False(t, ok)

	// Rows of unknown types cannot be mapped to a key and are skipped.
	h.cache.Invalidate(context.Background(), model.TranslatedField{ContentTypeID: -1})

	_, ok = h.cache.Get(nil, "description", "pt-br")
	require.False(t, ok)
}

// saveDuringGet commits a save right after the wrapped store read returns,
// before Resolve gets to write the cache.
type saveDuringGet struct {
	repository.TranslatedFieldRepository
	save func(ctx context.Context)
}

func (r *saveDuringGet) Get(ctx context.Context, key repository.TranslationKey) (*model.TranslatedField, error) {
	row, err := r.TranslatedFieldRepository.Get(ctx, key)
	if r.save != nil {
		save := r.save
		r.save = nil
		save(ctx)
	}
	return row, err
}

func TestResolve_SaveDuringLookupIsNotShadowed(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, 42, "A wooden chair")
	testutil.SeedTranslation(t, h.db, "pt-br", h.productType.ID, 42, "description", "Cadeira")

	inner := repository.NewTranslatedFieldRepository(h.db, h.cache.Invalidate)
	repo := &saveDuringGet{TranslatedFieldRepository: inner}
	svc := service.NewTranslationService(repo, h.registry, h.cache, locale.NewMatcher([]string{"en-us", "pt-br"}, "en-us"))
	repo.save = func(ctx context.Context) {
		_, err := svc.SaveEditor(ctx, h.productType.ID, 42, "description", []service.LanguageValue{
			{Language: "pt-br", Value: "Cadeira nova"},
		})
		require.NoError(t, err)
	}

	got, err := svc.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "Cadeira", got, "the read started before the save")

	_, ok := h.cache.Get(p, "description", "pt-br")
	require.False(t, ok, "stale value must not be cached")

	got, err = svc.Resolve(ptBR(), p, "description")
	require.NoError(t, err)
	require.Equal(t, "Cadeira nova", got)
}

func TestTranslationCache_SetIfCurrent(t *testing.T) {
	h := newHarness(t)
	p := &model.Product{ID: 42}

	gen := h.cache.Generation(p, "description", "pt-br")
	h.cache.Invalidate(context.Background(), model.TranslatedField{
		Language: "pt-br", ContentTypeID: h.productType.ID, ObjectID: 42, FieldName: "description",
	})
	require.False(t, h.cache.SetIfCurrent(p, "description", "old", "pt-br", gen))
	_, ok := h.cache.Get(p, "description", "pt-br")
	require.False(t, ok)

	gen = h.cache.Generation(p, "description", "pt-br")
	require.True(t, h.cache.SetIfCurrent(p, "description", "new", "pt-br", gen))
	got, ok := h.cache.Get(p, "description", "pt-br")
	require.True(t, ok)
	require.Equal(t, "new", got)

	// Other keys are unaffected by the invalidation.
	require.Equal(t, uint64(0), h.cache.Generation(p, "name", "pt-br"))
}
