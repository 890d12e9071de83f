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

type ProductRepository interface {
	Create(ctx context.Context, name, description string) (model.Product, error)
	// GetByID returns nil, nil when the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, id int64, name, description string) (model.Product, error)
}

type productRepository struct {
	db dbtx
}

func NewProductRepository(db dbtx) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, name, description string) (model.Product, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO products (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, description, formatTime(now), formatTime(now),
	)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return model.Product{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, created_at, updated_at FROM products WHERE id = ?`, id)

	var p model.Product
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.CreatedAt, _ = parseTime(createdAt)
	p.UpdatedAt, _ = parseTime(updatedAt)
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, name, description string) (model.Product, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE products SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name, description, formatTime(now), id,
	)
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return model.Product{}, fmt.Errorf("update product: %w", sql.ErrNoRows)
	}
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if p == nil {
		return model.Product{}, fmt.Errorf("update product: %w", sql.ErrNoRows)
	}
	return *p, nil
}
