package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fieldtrans/internal/model"
	"fieldtrans/internal/snowflake"
)

type DynamicTemplateRepository interface {
	Create(ctx context.Context, tpl model.DynamicTemplate) (model.DynamicTemplate, error)
	// GetBySlug returns nil, nil when no template has slug.
	GetBySlug(ctx context.Context, slug string) (*model.DynamicTemplate, error)
	// ListByGroup returns the group's templates ordered by title.
	ListByGroup(ctx context.Context, group string) ([]model.DynamicTemplate, error)
	List(ctx context.Context) ([]model.DynamicTemplate, error)
	Update(ctx context.Context, tpl model.DynamicTemplate) (model.DynamicTemplate, error)
}

type dynamicTemplateRepository struct {
	db dbtx
}

func NewDynamicTemplateRepository(db dbtx) DynamicTemplateRepository {
	return &dynamicTemplateRepository{db: db}
}

const dynamicTemplateColumns = `id, title, slug, template_group, content, created_at, updated_at`

func scanDynamicTemplate(scanner interface{ Scan(...any) error }) (model.DynamicTemplate, error) {
	var tpl model.DynamicTemplate
	var createdAt, updatedAt string
	if err := scanner.Scan(&tpl.ID, &tpl.Title, &tpl.Slug, &tpl.Group, &tpl.Content, &createdAt, &updatedAt); err != nil {
		return model.DynamicTemplate{}, err
	}
	tpl.CreatedAt, _ = parseTime(createdAt)
	tpl.UpdatedAt, _ = parseTime(updatedAt)
	return tpl, nil
}

func (r *dynamicTemplateRepository) Create(ctx context.Context, tpl model.DynamicTemplate) (model.DynamicTemplate, error) {
	tpl.ID = snowflake.NextID()
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO dynamic_templates (`+dynamicTemplateColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tpl.ID, tpl.Title, tpl.Slug, tpl.Group, tpl.Content, formatTime(now), formatTime(now),
	)
	if err != nil {
		return model.DynamicTemplate{}, fmt.Errorf("create dynamic template: %w", err)
	}
	return tpl, nil
}

func (r *dynamicTemplateRepository) GetBySlug(ctx context.Context, slug string) (*model.DynamicTemplate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dynamicTemplateColumns+` FROM dynamic_templates WHERE slug = ?`, slug)
	tpl, err := scanDynamicTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dynamic template: %w", err)
	}
	return &tpl, nil
}

func (r *dynamicTemplateRepository) ListByGroup(ctx context.Context, group string) ([]model.DynamicTemplate, error) {
	return r.list(ctx, `SELECT `+dynamicTemplateColumns+` FROM dynamic_templates WHERE template_group = ? ORDER BY title`, group)
}

func (r *dynamicTemplateRepository) List(ctx context.Context) ([]model.DynamicTemplate, error) {
	return r.list(ctx, `SELECT `+dynamicTemplateColumns+` FROM dynamic_templates ORDER BY title`)
}

func (r *dynamicTemplateRepository) list(ctx context.Context, query string, args ...any) ([]model.DynamicTemplate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dynamic templates: %w", err)
	}
	defer rows.Close()

	var templates []model.DynamicTemplate
	for rows.Next() {
		tpl, err := scanDynamicTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (r *dynamicTemplateRepository) Update(ctx context.Context, tpl model.DynamicTemplate) (model.DynamicTemplate, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE dynamic_templates SET title = ?, slug = ?, template_group = ?, content = ?, updated_at = ? WHERE id = ?`,
		tpl.Title, tpl.Slug, tpl.Group, tpl.Content, formatTime(now), tpl.ID,
	)
	if err != nil {
		return model.DynamicTemplate{}, fmt.Errorf("update dynamic template: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return model.DynamicTemplate{}, fmt.Errorf("update dynamic template: %w", sql.ErrNoRows)
	}
	tpl.UpdatedAt = now
	return tpl, nil
}
