package model

import "time"

// TranslatedField holds the text of one entity field in one language.
// (Language, ContentTypeID, ObjectID, FieldName) is unique.
type TranslatedField struct {
	ID            int64
	Language      string
	ContentTypeID int64
	ObjectID      int64
	FieldName     string
	Value         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
