package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fieldtrans/internal/contenttype"
	"fieldtrans/internal/locale"
	"fieldtrans/internal/logger"
	"fieldtrans/internal/model"
	"fieldtrans/internal/repository"
)

const staticPrefix = "/static/"

// LanguageValue is one submitted row of the translation editor.
type LanguageValue struct {
	Language string
	Value    string
}

// Editor is the state of the translation popup for one entity field.
type Editor struct {
	ContentType model.ContentType
	ObjectID    int64
	FieldName   string
	Original    string
	// Rows holds one row per configured language, in configured order.
	Rows []model.TranslatedField
}

type TranslationService interface {
	// Resolve returns the value of field for the active language in ctx:
	// cached value, else a non-blank stored translation, else the live
	// field value. Static asset paths get the language segment.
	Resolve(ctx context.Context, e contenttype.Entity, field string) (string, error)
	// Languages returns the configured languages, default first.
	Languages() []string
	// OpenEditor makes sure a row exists for every configured language and
	// returns them.
	OpenEditor(ctx context.Context, contentTypeID, objectID int64, field string) (Editor, error)
	// SaveEditor stores the submitted values in one batch.
	SaveEditor(ctx context.Context, contentTypeID, objectID int64, field string, values []LanguageValue) ([]model.TranslatedField, error)
}

type translationService struct {
	repo     repository.TranslatedFieldRepository
	registry *contenttype.Registry
	cache    *TranslationCache
	matcher  *locale.Matcher
}

func NewTranslationService(
	repo repository.TranslatedFieldRepository,
	registry *contenttype.Registry,
	cache *TranslationCache,
	matcher *locale.Matcher,
) TranslationService {
	return &translationService{
		repo:     repo,
		registry: registry,
		cache:    cache,
		matcher:  matcher,
	}
}

func (s *translationService) Languages() []string {
	return s.matcher.Languages()
}

func (s *translationService) activeLanguage(ctx context.Context) string {
	if lang := locale.FromContext(ctx); lang != "" {
		return lang
	}
	return s.matcher.Default()
}

func (s *translationService) Resolve(ctx context.Context, e contenttype.Entity, field string) (string, error) {
	ct, err := s.registry.ContentTypeOf(e)
	if err != nil {
		return "", err
	}
	live, ok := e.FieldValue(field)
	if !ok {
		return "", fmt.Errorf("%w: %s has no field %q", ErrInvalid, ct.Key(), field)
	}
	lang := s.activeLanguage(ctx)

	if cached, ok := s.cache.Get(e, field, lang); ok {
		if cached == Absent {
			return rewriteStaticPaths(live, lang), nil
		}
		return cached, nil
	}

	// A save committed after this point must not be shadowed by our write.
	gen := s.cache.Generation(e, field, lang)
	row, err := s.repo.Get(ctx, repository.TranslationKey{
		Language:      lang,
		ContentTypeID: ct.ID,
		ObjectID:      e.PK(),
		FieldName:     field,
	})
	if err != nil {
		logger.Warn("translation lookup failed", "module", "service", "action", "fetch", "resource", "translation", "result", "failed", "type", ct.Key().String(), "object_id", e.PK(), "field", field, "language", lang, "error", err)
		return "", fmt.Errorf("lookup translation: %w", err)
	}

	// Blank translations never override the live value.
	if row == nil || strings.TrimSpace(row.Value) == "" {
		s.cache.SetIfCurrent(e, field, Absent, lang, gen)
		return rewriteStaticPaths(live, lang), nil
	}

	result := rewriteStaticPaths(row.Value, lang)
	s.cache.SetIfCurrent(e, field, result, lang, gen)
	return result, nil
}

// rewriteStaticPaths points /static/ URLs at the language's asset folder.
func rewriteStaticPaths(value, lang string) string {
	if lang == "" {
		return value
	}
	return strings.ReplaceAll(value, staticPrefix, staticPrefix+lang+"/")
}

func (s *translationService) editorTarget(ctx context.Context, contentTypeID, objectID int64, field string) (model.ContentType, string, error) {
	ct, ok := s.registry.ByID(contentTypeID)
	if !ok {
		return model.ContentType{}, "", fmt.Errorf("%w: unknown content type id %d", ErrMisconfigured, contentTypeID)
	}
	if !s.registry.IsTranslatable(ct.Key(), field) {
		return model.ContentType{}, "", &FieldError{Field: "field_name", Message: fmt.Sprintf("%s.%s is not translatable", ct.Key(), field)}
	}

	e, err := s.registry.Load(ctx, contentTypeID, objectID)
	if err != nil {
		if errors.Is(err, contenttype.ErrObjectNotFound) {
			return model.ContentType{}, "", ErrNotFound
		}
		return model.ContentType{}, "", err
	}
	live, ok := e.FieldValue(field)
	if !ok {
		return model.ContentType{}, "", fmt.Errorf("%w: %s lists field %q but the entity has no such field", ErrMisconfigured, ct.Key(), field)
	}
	return ct, live, nil
}

func (s *translationService) OpenEditor(ctx context.Context, contentTypeID, objectID int64, field string) (Editor, error) {
	ct, live, err := s.editorTarget(ctx, contentTypeID, objectID, field)
	if err != nil {
		return Editor{}, err
	}

	languages := s.matcher.Languages()
	for _, lang := range languages {
		_, _, err := s.repo.GetOrCreate(ctx, repository.TranslationKey{
			Language:      lang,
			ContentTypeID: ct.ID,
			ObjectID:      objectID,
			FieldName:     field,
		})
		if err != nil {
			return Editor{}, fmt.Errorf("prepare %s translation: %w", lang, err)
		}
	}

	stored, err := s.repo.Filter(ctx, ct.ID, objectID, field)
	if err != nil {
		return Editor{}, fmt.Errorf("list translations: %w", err)
	}
	byLang := make(map[string]model.TranslatedField, len(stored))
	for _, row := range stored {
		byLang[row.Language] = row
	}

	rows := make([]model.TranslatedField, 0, len(languages))
	for _, lang := range languages {
		if row, ok := byLang[lang]; ok {
			rows = append(rows, row)
		}
	}

	return Editor{
		ContentType: ct,
		ObjectID:    objectID,
		FieldName:   field,
		Original:    live,
		Rows:        rows,
	}, nil
}

func (s *translationService) SaveEditor(ctx context.Context, contentTypeID, objectID int64, field string, values []LanguageValue) ([]model.TranslatedField, error) {
	ct, _, err := s.editorTarget(ctx, contentTypeID, objectID, field)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, &FieldError{Field: "language", Message: "no translations submitted"}
	}

	rows := make([]model.TranslatedField, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		lang, ok := s.matcher.Explicit(v.Language)
		if !ok {
			return nil, &FieldError{Field: "language", Message: fmt.Sprintf("language %q is not configured", v.Language)}
		}
		if seen[lang] {
			return nil, &FieldError{Field: "language", Message: fmt.Sprintf("language %q submitted twice", lang)}
		}
		seen[lang] = true
		rows = append(rows, model.TranslatedField{
			Language:      lang,
			ContentTypeID: ct.ID,
			ObjectID:      objectID,
			FieldName:     field,
			Value:         v.Value,
		})
	}

	saved, err := s.repo.SaveBatch(ctx, rows)
	if err != nil {
		logger.Warn("translations save failed", "module", "service", "action", "save", "resource", "translation", "result", "failed", "type", ct.Key().String(), "object_id", objectID, "field", field, "error", err)
		return nil, fmt.Errorf("save translations: %w", err)
	}
	logger.Info("translations saved", "module", "service", "action", "save", "resource", "translation", "result", "ok", "type", ct.Key().String(), "object_id", objectID, "field", field, "count", len(saved))
	return saved, nil
}
