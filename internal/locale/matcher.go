package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Matcher picks one of the configured languages for a request.
type Matcher struct {
	codes    []string
	known    map[string]bool
	fallback string
	matcher  language.Matcher
}

// NewMatcher builds a matcher over codes (already formatted). fallback is
// returned when nothing else matches.
func NewMatcher(codes []string, fallback string) *Matcher {
	tags := make([]language.Tag, 0, len(codes)+1)
	known := make(map[string]bool, len(codes))
	// The fallback goes first so language.Matcher uses it as the default.
	ordered := append([]string{Format(fallback)}, codes...)
	kept := make([]string, 0, len(ordered))
	for _, code := range ordered {
		code = Format(code)
		if code == "" || known[code] {
			continue
		}
		known[code] = true
		kept = append(kept, code)
		tags = append(tags, Tag(code))
	}
	return &Matcher{
		codes:    kept,
		known:    known,
		fallback: Format(fallback),
		matcher:  language.NewMatcher(tags),
	}
}

// Languages returns the configured codes, default first.
func (m *Matcher) Languages() []string {
	out := make([]string, len(m.codes))
	copy(out, m.codes)
	return out
}

// Default returns the fallback language.
func (m *Matcher) Default() string {
	return m.fallback
}

// Supported reports whether code is one of the configured languages.
func (m *Matcher) Supported(code string) bool {
	return m.known[Format(code)]
}

// Explicit returns code formatted when it is configured.
func (m *Matcher) Explicit(code string) (string, bool) {
	code = Format(code)
	if m.known[code] {
		return code, true
	}
	return "", false
}

// AcceptLanguage matches an Accept-Language header value.
func (m *Matcher) AcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return m.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return m.fallback
	}
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(m.codes) {
		return m.fallback
	}
	return m.codes[idx]
}
