package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fieldtrans/internal/contenttype"
	"fieldtrans/internal/locale"
	"fieldtrans/internal/model"
	"fieldtrans/internal/repository"
)

// ProductTranslatableFields are the product fields editable per language.
var ProductTranslatableFields = []string{"name", "description"}

// LocalizedProduct carries a product's fields resolved for one language.
type LocalizedProduct struct {
	Product     model.Product
	Language    string
	Name        string
	Description string
}

type ProductService interface {
	Create(ctx context.Context, name, description string) (model.Product, error)
	Get(ctx context.Context, id int64) (model.Product, error)
	Update(ctx context.Context, id int64, name, description string) (model.Product, error)
	// Localized returns the product with translatable fields resolved for
	// the active language.
	Localized(ctx context.Context, id int64) (LocalizedProduct, error)
	// Definition registers products with the content type registry.
	Definition() contenttype.Definition
}

type productService struct {
	products     repository.ProductRepository
	translations TranslationService
}

func NewProductService(products repository.ProductRepository, translations TranslationService) ProductService {
	return &productService{products: products, translations: translations}
}

func (s *productService) Definition() contenttype.Definition {
	return contenttype.Definition{
		Key:    model.ProductContentType,
		Fields: ProductTranslatableFields,
		Load: func(ctx context.Context, id int64) (contenttype.Entity, error) {
			p, err := s.products.GetByID(ctx, id)
			if err != nil || p == nil {
				return nil, err
			}
			return p, nil
		},
	}
}

func (s *productService) Create(ctx context.Context, name, description string) (model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Product{}, &FieldError{Field: "name", Message: "required"}
	}
	return s.products.Create(ctx, name, description)
}

func (s *productService) Get(ctx context.Context, id int64) (model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if p == nil {
		return model.Product{}, ErrNotFound
	}
	return *p, nil
}

func (s *productService) Update(ctx context.Context, id int64, name, description string) (model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Product{}, &FieldError{Field: "name", Message: "required"}
	}
	p, err := s.products.Update(ctx, id, name, description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, err
	}
	return p, nil
}

func (s *productService) Localized(ctx context.Context, id int64) (LocalizedProduct, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return LocalizedProduct{}, err
	}
	name, err := s.translations.Resolve(ctx, &p, "name")
	if err != nil {
		return LocalizedProduct{}, fmt.Errorf("resolve name: %w", err)
	}
	description, err := s.translations.Resolve(ctx, &p, "description")
	if err != nil {
		return LocalizedProduct{}, fmt.Errorf("resolve description: %w", err)
	}
	return LocalizedProduct{
		Product:     p,
		Language:    s.languageOf(ctx),
		Name:        name,
		Description: description,
	}, nil
}

func (s *productService) languageOf(ctx context.Context) string {
	if lang := locale.FromContext(ctx); lang != "" {
		return lang
	}
	langs := s.translations.Languages()
	if len(langs) == 0 {
		return ""
	}
	return langs[0]
}
