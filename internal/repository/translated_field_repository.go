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

// SaveHook runs after a translated field row was created or updated and the
// write is committed. Hooks run synchronously, before the write call returns.
type SaveHook func(ctx context.Context, row model.TranslatedField)

// TranslationKey addresses one translated field row.
type TranslationKey struct {
	Language      string
	ContentTypeID int64
	ObjectID      int64
	FieldName     string
}

// TranslatedFieldRepository stores per-language field values. Rows are never
// deleted.
type TranslatedFieldRepository interface {
	// Get returns nil, nil when no row exists for key.
	Get(ctx context.Context, key TranslationKey) (*model.TranslatedField, error)
	// GetOrCreate returns the row for key, inserting a blank one when absent.
	// created reports whether this call inserted it.
	GetOrCreate(ctx context.Context, key TranslationKey) (row model.TranslatedField, created bool, err error)
	// Filter returns every language row of one field, ordered by language.
	Filter(ctx context.Context, contentTypeID, objectID int64, fieldName string) ([]model.TranslatedField, error)
	// SaveBatch writes the Value of every row in one transaction. Rows are
	// matched on their key; missing rows are inserted.
	SaveBatch(ctx context.Context, rows []model.TranslatedField) ([]model.TranslatedField, error)
}

type translatedFieldRepository struct {
	db    *sql.DB
	hooks []SaveHook
}

func NewTranslatedFieldRepository(db *sql.DB, hooks ...SaveHook) TranslatedFieldRepository {
	return &translatedFieldRepository{db: db, hooks: hooks}
}

const translatedFieldColumns = `id, language, content_type_id, object_id, field_name, value, created_at, updated_at`

func scanTranslatedField(scanner interface{ Scan(...any) error }) (model.TranslatedField, error) {
	var t model.TranslatedField
	var createdAt, updatedAt string
	if err := scanner.Scan(&t.ID, &t.Language, &t.ContentTypeID, &t.ObjectID, &t.FieldName, &t.Value, &createdAt, &updatedAt); err != nil {
		return model.TranslatedField{}, err
	}
	t.CreatedAt, _ = parseTime(createdAt)
	t.UpdatedAt, _ = parseTime(updatedAt)
	return t, nil
}

func getTranslatedField(ctx context.Context, db dbtx, key TranslationKey) (*model.TranslatedField, error) {
	row := db.QueryRowContext(
		ctx,
		`SELECT `+translatedFieldColumns+` FROM translated_fields
		 WHERE language = ? AND content_type_id = ? AND object_id = ? AND field_name = ?`,
		key.Language, key.ContentTypeID, key.ObjectID, key.FieldName,
	)
	t, err := scanTranslatedField(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *translatedFieldRepository) Get(ctx context.Context, key TranslationKey) (*model.TranslatedField, error) {
	t, err := getTranslatedField(ctx, r.db, key)
	if err != nil {
		return nil, fmt.Errorf("get translated field: %w", err)
	}
	return t, nil
}

func (r *translatedFieldRepository) GetOrCreate(ctx context.Context, key TranslationKey) (model.TranslatedField, bool, error) {
	now := formatTime(time.Now())
	result, err := r.db.ExecContext(
		ctx,
		`INSERT INTO translated_fields (`+translatedFieldColumns+`)
		 VALUES (?, ?, ?, ?, ?, '', ?, ?)
		 ON CONFLICT(language, content_type_id, object_id, field_name) DO NOTHING`,
		snowflake.NextID(), key.Language, key.ContentTypeID, key.ObjectID, key.FieldName, now, now,
	)
	if err != nil {
		return model.TranslatedField{}, false, fmt.Errorf("create translated field: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return model.TranslatedField{}, false, fmt.Errorf("create translated field: %w", err)
	}

	t, err := getTranslatedField(ctx, r.db, key)
	if err != nil {
		return model.TranslatedField{}, false, fmt.Errorf("get translated field: %w", err)
	}
	if t == nil {
		return model.TranslatedField{}, false, fmt.Errorf("get translated field: %w", sql.ErrNoRows)
	}

	created := affected > 0
	if created {
		r.fireHooks(ctx, []model.TranslatedField{*t})
	}
	return *t, created, nil
}

func (r *translatedFieldRepository) Filter(ctx context.Context, contentTypeID, objectID int64, fieldName string) ([]model.TranslatedField, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+translatedFieldColumns+` FROM translated_fields
		 WHERE content_type_id = ? AND object_id = ? AND field_name = ?
		 ORDER BY language`,
		contentTypeID, objectID, fieldName,
	)
	if err != nil {
		return nil, fmt.Errorf("filter translated fields: %w", err)
	}
	defer rows.Close()

	var result []model.TranslatedField
	for rows.Next() {
		t, err := scanTranslatedField(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *translatedFieldRepository) SaveBatch(ctx context.Context, rows []model.TranslatedField) ([]model.TranslatedField, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin translated fields tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := formatTime(time.Now())
	saved := make([]model.TranslatedField, 0, len(rows))
	for _, row := range rows {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO translated_fields (`+translatedFieldColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(language, content_type_id, object_id, field_name) DO UPDATE SET
			   value = excluded.value,
			   updated_at = excluded.updated_at`,
			snowflake.NextID(), row.Language, row.ContentTypeID, row.ObjectID, row.FieldName, row.Value, now, now,
		)
		if err != nil {
			return nil, fmt.Errorf("save translated field %s/%s: %w", row.FieldName, row.Language, err)
		}

		t, err := getTranslatedField(ctx, tx, TranslationKey{
			Language:      row.Language,
			ContentTypeID: row.ContentTypeID,
			ObjectID:      row.ObjectID,
			FieldName:     row.FieldName,
		})
		if err != nil {
			return nil, fmt.Errorf("reload translated field: %w", err)
		}
		if t != nil {
			saved = append(saved, *t)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit translated fields: %w", err)
	}

	r.fireHooks(ctx, saved)
	return saved, nil
}

func (r *translatedFieldRepository) fireHooks(ctx context.Context, rows []model.TranslatedField) {
	for _, row := range rows {
		for _, hook := range r.hooks {
			hook(ctx, row)
		}
	}
}
