package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fieldtrans/internal/model"
	"fieldtrans/internal/snowflake"
)

type ContentTypeRepository interface {
	// GetOrCreate returns the content type for (appLabel, model), inserting it when missing.
	GetOrCreate(ctx context.Context, appLabel, modelName string) (model.ContentType, error)
	GetByID(ctx context.Context, id int64) (*model.ContentType, error)
	List(ctx context.Context) ([]model.ContentType, error)
}

type contentTypeRepository struct {
	db dbtx
}

func NewContentTypeRepository(db dbtx) ContentTypeRepository {
	return &contentTypeRepository{db: db}
}

func (r *contentTypeRepository) GetOrCreate(ctx context.Context, appLabel, modelName string) (model.ContentType, error) {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO content_types (id, app_label, model) VALUES (?, ?, ?)
		 ON CONFLICT(app_label, model) DO NOTHING`,
		snowflake.NextID(), appLabel, modelName,
	)
	if err != nil {
		return model.ContentType{}, fmt.Errorf("insert content type: %w", err)
	}

	var ct model.ContentType
	err = r.db.QueryRowContext(
		ctx,
		`SELECT id, app_label, model FROM content_types WHERE app_label = ? AND model = ?`,
		appLabel, modelName,
	).Scan(&ct.ID, &ct.AppLabel, &ct.Model)
	if err != nil {
		return model.ContentType{}, fmt.Errorf("get content type: %w", err)
	}
	return ct, nil
}

func (r *contentTypeRepository) GetByID(ctx context.Context, id int64) (*model.ContentType, error) {
	var ct model.ContentType
	err := r.db.QueryRowContext(
		ctx,
		`SELECT id, app_label, model FROM content_types WHERE id = ?`,
		id,
	).Scan(&ct.ID, &ct.AppLabel, &ct.Model)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content type: %w", err)
	}
	return &ct, nil
}

func (r *contentTypeRepository) List(ctx context.Context) ([]model.ContentType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, app_label, model FROM content_types ORDER BY app_label, model`)
	if err != nil {
		return nil, fmt.Errorf("list content types: %w", err)
	}
	defer rows.Close()

	var types []model.ContentType
	for rows.Next() {
		var ct model.ContentType
		if err := rows.Scan(&ct.ID, &ct.AppLabel, &ct.Model); err != nil {
			return nil, err
		}
		types = append(types, ct)
	}
	return types, rows.Err()
}
