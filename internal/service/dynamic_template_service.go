package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"fieldtrans/internal/logger"
	"fieldtrans/internal/model"
	"fieldtrans/internal/repository"
)

// maxTemplateDepth bounds dynamicTemplate calls nested inside templates.
const maxTemplateDepth = 8

type DynamicTemplateInput struct {
	Title   string
	Slug    string
	Group   string
	Content string
}

type DynamicTemplateService interface {
	Create(ctx context.Context, in DynamicTemplateInput) (model.DynamicTemplate, error)
	Update(ctx context.Context, slug string, in DynamicTemplateInput) (model.DynamicTemplate, error)
	Get(ctx context.Context, slug string) (model.DynamicTemplate, error)
	List(ctx context.Context) ([]model.DynamicTemplate, error)
	// Render executes the template stored under slug with data.
	Render(ctx context.Context, slug string, data any) (template.HTML, error)
	// RenderGroup executes every template of group, ordered by title, and
	// concatenates the output.
	RenderGroup(ctx context.Context, group string, data any) (template.HTML, error)
}

type dynamicTemplateService struct {
	templates repository.DynamicTemplateRepository
	funcs     *TemplateFuncs
}

func NewDynamicTemplateService(templates repository.DynamicTemplateRepository, funcs *TemplateFuncs) DynamicTemplateService {
	return &dynamicTemplateService{templates: templates, funcs: funcs}
}

type templateDepthKey struct{}

// prepare fills in the slug and group the way they are stored.
func prepareDynamicTemplate(in DynamicTemplateInput) (model.DynamicTemplate, error) {
	tpl := model.DynamicTemplate{
		Title:   strings.TrimSpace(in.Title),
		Slug:    Slugify(in.Slug),
		Group:   Slugify(in.Group),
		Content: in.Content,
	}
	if tpl.Title == "" {
		return model.DynamicTemplate{}, &FieldError{Field: "title", Message: "required"}
	}
	if tpl.Slug == "" {
		tpl.Slug = Slugify(tpl.Title)
	}
	if tpl.Slug == "" {
		return model.DynamicTemplate{}, &FieldError{Field: "slug", Message: "cannot be derived from title"}
	}
	return tpl, nil
}

func (s *dynamicTemplateService) funcMap(ctx context.Context) template.FuncMap {
	fm := template.FuncMap{}
	if s.funcs != nil {
		fm = s.funcs.FuncMap(ctx)
	}
	fm["dynamicTemplate"] = func(slug string) (template.HTML, error) {
		return s.Render(ctx, Slugify(slug), nil)
	}
	fm["dynamicTemplateGroup"] = func(group string) (template.HTML, error) {
		return s.RenderGroup(ctx, Slugify(group), nil)
	}
	return fm
}

func (s *dynamicTemplateService) parse(ctx context.Context, tpl model.DynamicTemplate) (*template.Template, error) {
	t, err := template.New(tpl.Slug).Funcs(s.funcMap(ctx)).Parse(tpl.Content)
	if err != nil {
		return nil, &FieldError{Field: "content", Message: err.Error()}
	}
	return t, nil
}

func (s *dynamicTemplateService) Create(ctx context.Context, in DynamicTemplateInput) (model.DynamicTemplate, error) {
	tpl, err := prepareDynamicTemplate(in)
	if err != nil {
		return model.DynamicTemplate{}, err
	}
	if _, err := s.parse(ctx, tpl); err != nil {
		return model.DynamicTemplate{}, err
	}
	if existing, err := s.templates.GetBySlug(ctx, tpl.Slug); err != nil {
		return model.DynamicTemplate{}, fmt.Errorf("check slug: %w", err)
	} else if existing != nil {
		return model.DynamicTemplate{}, ErrConflict
	}

	created, err := s.templates.Create(ctx, tpl)
	if err != nil {
		return model.DynamicTemplate{}, err
	}
	logger.Info("dynamic template created", "module", "service", "action", "create", "resource", "dynamic_template", "result", "ok", "slug", created.Slug, "group", created.Group)
	return created, nil
}

func (s *dynamicTemplateService) Update(ctx context.Context, slug string, in DynamicTemplateInput) (model.DynamicTemplate, error) {
	current, err := s.Get(ctx, slug)
	if err != nil {
		return model.DynamicTemplate{}, err
	}
	tpl, err := prepareDynamicTemplate(in)
	if err != nil {
		return model.DynamicTemplate{}, err
	}
	if _, err := s.parse(ctx, tpl); err != nil {
		return model.DynamicTemplate{}, err
	}
	if tpl.Slug != current.Slug {
		if existing, err := s.templates.GetBySlug(ctx, tpl.Slug); err != nil {
			return model.DynamicTemplate{}, fmt.Errorf("check slug: %w", err)
		} else if existing != nil {
			return model.DynamicTemplate{}, ErrConflict
		}
	}
	tpl.ID = current.ID
	tpl.CreatedAt = current.CreatedAt

	updated, err := s.templates.Update(ctx, tpl)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DynamicTemplate{}, ErrNotFound
		}
		return model.DynamicTemplate{}, err
	}
	return updated, nil
}

func (s *dynamicTemplateService) Get(ctx context.Context, slug string) (model.DynamicTemplate, error) {
	tpl, err := s.templates.GetBySlug(ctx, slug)
	if err != nil {
		return model.DynamicTemplate{}, err
	}
	if tpl == nil {
		return model.DynamicTemplate{}, ErrNotFound
	}
	return *tpl, nil
}

func (s *dynamicTemplateService) List(ctx context.Context) ([]model.DynamicTemplate, error) {
	return s.templates.List(ctx)
}

func (s *dynamicTemplateService) nested(ctx context.Context) (context.Context, error) {
	depth, _ := ctx.Value(templateDepthKey{}).(int)
	if depth >= maxTemplateDepth {
		return nil, fmt.Errorf("%w: dynamic templates nested deeper than %d", ErrInvalid, maxTemplateDepth)
	}
	return context.WithValue(ctx, templateDepthKey{}, depth+1), nil
}

func (s *dynamicTemplateService) execute(ctx context.Context, tpl model.DynamicTemplate, data any, b *strings.Builder) error {
	ctx, err := s.nested(ctx)
	if err != nil {
		return err
	}
	t, err := s.parse(ctx, tpl)
	if err != nil {
		return err
	}
	if err := t.Execute(b, data); err != nil {
		return fmt.Errorf("render %s: %w", tpl.Slug, err)
	}
	return nil
}

func (s *dynamicTemplateService) Render(ctx context.Context, slug string, data any) (template.HTML, error) {
	tpl, err := s.Get(ctx, slug)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := s.execute(ctx, tpl, data, &b); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

func (s *dynamicTemplateService) RenderGroup(ctx context.Context, group string, data any) (template.HTML, error) {
	templates, err := s.templates.ListByGroup(ctx, group)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, tpl := range templates {
		if err := s.execute(ctx, tpl, data, &b); err != nil {
			return "", err
		}
	}
	return template.HTML(b.String()), nil
}
