// Package i18n localizes the strings of the admin translation editor.
package i18n

import (
	"embed"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"fieldtrans/internal/logger"
)

//go:embed active.*.toml
var localeFS embed.FS

// Translator wraps a go-i18n bundle loaded from the embedded catalogs.
type Translator struct {
	bundle          *goi18n.Bundle
	defaultLanguage language.Tag
}

// NewTranslator loads the embedded catalogs. defaultLocale is used when a
// message is missing in the requested language.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.pt.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Warn("i18n catalog load failed", "module", "i18n", "action", "load", "resource", "catalog", "result", "failed", "file", file, "error", err)
		}
	}

	return &Translator{bundle: bundle, defaultLanguage: tag}
}

// T renders message key for locale, falling back to the default locale and
// finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := goi18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		logger.Debug("i18n localize failed", "module", "i18n", "action", "fetch", "resource", "message", "result", "failed", "key", key, "locales", languages, "error", err)
		return key
	}
	return msg
}
