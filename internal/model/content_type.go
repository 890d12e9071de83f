package model

import (
	"fmt"
	"strings"
)

// ContentTypeKey is the "app_label.model" tag of an entity type.
type ContentTypeKey struct {
	AppLabel string
	Model    string
}

func (k ContentTypeKey) String() string {
	return k.AppLabel + "." + k.Model
}

// ParseContentTypeKey parses "app_label.model".
func ParseContentTypeKey(s string) (ContentTypeKey, error) {
	app, mdl, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ".")
	if !ok || app == "" || mdl == "" || strings.Contains(mdl, ".") {
		return ContentTypeKey{}, fmt.Errorf("invalid content type %q", s)
	}
	return ContentTypeKey{AppLabel: app, Model: mdl}, nil
}

// ContentType identifies an entity type for generic references.
type ContentType struct {
	ID       int64
	AppLabel string
	Model    string
}

func (c ContentType) Key() ContentTypeKey {
	return ContentTypeKey{AppLabel: c.AppLabel, Model: c.Model}
}
