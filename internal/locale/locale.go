// Package locale normalizes language codes and carries the active language
// through a request.
package locale

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type ctxKey struct{}

// Format lower-cases a language code and uses hyphens as separators,
// so "pt_BR" becomes "pt-br".
func Format(code string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), "_", "-")
}

// Valid reports whether code parses as a BCP 47 tag.
func Valid(code string) bool {
	if code == "" {
		return false
	}
	_, err := language.Parse(code)
	return err == nil
}

// Tag parses code, returning language.Und when it is not a valid tag.
func Tag(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und
	}
	return tag
}

// WithLanguage returns a context whose active language is code.
func WithLanguage(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, ctxKey{}, Format(code))
}

// FromContext returns the active language, or "" when none was set.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	code, _ := ctx.Value(ctxKey{}).(string)
	return code
}

// DisplayName returns the language's name written in that language,
// e.g. "português (Brasil)" for pt-br. Falls back to the code itself.
func DisplayName(code string) string {
	tag := Tag(code)
	if tag == language.Und {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}
