package service

import (
	"context"
	"fmt"
	"html/template"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"

	"fieldtrans/internal/contenttype"
	"fieldtrans/internal/i18n"
	"fieldtrans/internal/locale"
)

// FieldFormat holds the post-processing flags of transField.
type FieldFormat struct {
	Safe       bool
	Title      bool
	Linebreaks bool
	Upper      bool
	Escape     bool
}

// ParseFieldFormat reads flags such as "safe" or "upper".
func ParseFieldFormat(flags ...string) (FieldFormat, error) {
	var f FieldFormat
	for _, flag := range flags {
		switch strings.ToLower(strings.TrimSpace(flag)) {
		case "safe":
			f.Safe = true
		case "title":
			f.Title = true
		case "linebreaks":
			f.Linebreaks = true
		case "upper":
			f.Upper = true
		case "escape":
			f.Escape = true
		case "":
		default:
			return FieldFormat{}, fmt.Errorf("%w: unknown transField flag %q", ErrInvalid, flag)
		}
	}
	return f, nil
}

var (
	safePolicyOnce sync.Once
	safePolicy     *bluemonday.Policy
)

func safeSanitizer() *bluemonday.Policy {
	safePolicyOnce.Do(func() {
		safePolicy = bluemonday.UGCPolicy()
	})
	return safePolicy
}

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// linebreaks wraps paragraphs in <p> and turns single newlines into <br>.
func linebreaks(value string, escape bool) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	paras := paragraphSplit.Split(strings.Trim(value, "\n"), -1)
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		if escape {
			p = template.HTMLEscapeString(p)
		}
		out = append(out, "<p>"+strings.ReplaceAll(p, "\n", "<br>")+"</p>")
	}
	return strings.Join(out, "\n\n")
}

// FormatField applies f to value in order safe, title, linebreaks, upper,
// escape. Anything not produced as markup is HTML-escaped.
func FormatField(value, lang string, f FieldFormat) template.HTML {
	tag := locale.Tag(lang)
	markup := false

	if f.Safe {
		value = safeSanitizer().Sanitize(value)
		markup = true
	}
	if f.Title {
		value = cases.Title(tag).String(value)
	}
	if f.Linebreaks {
		value = linebreaks(value, !markup)
		markup = true
	}
	if f.Upper {
		value = cases.Upper(tag).String(value)
	}
	if f.Escape {
		value = template.HTMLEscapeString(value)
		markup = true
	}
	if !markup {
		value = template.HTMLEscapeString(value)
	}
	return template.HTML(value)
}

const adminFieldsTemplate = `<style type="text/css">
    .set_translation {
        float: right;
        font-weight: bold;
    }
</style>
<script type="text/javascript">
(function () {
    var fields = {{.Fields}};
    var url = {{.URL}};
    var label = {{.Label}};
    document.addEventListener('DOMContentLoaded', function () {
        document.querySelectorAll('div.form-row').forEach(function (row) {
            var field = fields.find(function (name) { return row.classList.contains(name); });
            if (!field) {
                return;
            }
            var link = document.createElement('a');
            link.className = 'set_translation';
            link.href = 'javascript: void(0)';
            link.textContent = label;
            link.addEventListener('click', function () {
                var query = 'content_type=' + {{.ContentTypeID}} +
                    '&field_name=' + encodeURIComponent(field) +
                    '&object_id=' + {{.ObjectID}};
                window.open(url + '?' + query, 'set_field_trans', 'width=700,height=550,popup=yes');
            });
            row.insertBefore(link, row.firstChild);
        });
    });
})();
</script>`

var adminFieldsTpl = template.Must(template.New("i18nAdminFields").Parse(adminFieldsTemplate))

// TemplateFuncs exposes translated fields to html/template.
type TemplateFuncs struct {
	translations TranslationService
	registry     *contenttype.Registry
	translator   *i18n.Translator
	editorURL    string
}

// NewTemplateFuncs builds the helpers. editorURL is the path of the
// translation popup.
func NewTemplateFuncs(translations TranslationService, registry *contenttype.Registry, translator *i18n.Translator, editorURL string) *TemplateFuncs {
	return &TemplateFuncs{
		translations: translations,
		registry:     registry,
		translator:   translator,
		editorURL:    editorURL,
	}
}

// FuncMap returns the helpers bound to ctx's active language:
//
//	{{transField .Product "description" "linebreaks"}}
//	{{i18nAdminFields .Product}}
func (f *TemplateFuncs) FuncMap(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"transField": func(e any, field string, flags ...string) (template.HTML, error) {
			return f.TransField(ctx, e, field, flags...)
		},
		"i18nAdminFields": func(e any) (template.HTML, error) {
			return f.AdminFields(ctx, e)
		},
	}
}

// asEntity treats nil and typed nil pointers as no entity.
func asEntity(v any) (contenttype.Entity, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false, nil
	}
	e, ok := v.(contenttype.Entity)
	if !ok {
		return nil, false, fmt.Errorf("%w: %T is not a translatable entity", ErrMisconfigured, v)
	}
	return e, true, nil
}

// TransField resolves field of e and formats it. A nil entity renders as "".
func (f *TemplateFuncs) TransField(ctx context.Context, v any, field string, flags ...string) (template.HTML, error) {
	e, ok, err := asEntity(v)
	if err != nil || !ok {
		return "", err
	}
	format, err := ParseFieldFormat(flags...)
	if err != nil {
		return "", err
	}
	value, err := f.translations.Resolve(ctx, e, field)
	if err != nil {
		return "", err
	}
	return FormatField(value, locale.FromContext(ctx), format), nil
}

// AdminFields renders the style and script adding a "Set translation" link
// to every translatable field row of e's admin form. Entities of types with
// no translatable fields render as "".
func (f *TemplateFuncs) AdminFields(ctx context.Context, v any) (template.HTML, error) {
	e, ok, err := asEntity(v)
	if err != nil || !ok {
		return "", err
	}
	ct, err := f.registry.ContentTypeOf(e)
	if err != nil {
		return "", err
	}
	fields := f.registry.Fields(ct.Key())
	if len(fields) == 0 {
		return "", nil
	}

	label := "Set translation"
	if f.translator != nil {
		label = f.translator.T(locale.FromContext(ctx), "SetTranslation", nil)
	}

	var b strings.Builder
	err = adminFieldsTpl.Execute(&b, map[string]any{
		"Fields":        fields,
		"URL":           f.editorURL,
		"Label":         label,
		"ContentTypeID": strconv.FormatInt(ct.ID, 10),
		"ObjectID":      strconv.FormatInt(e.PK(), 10),
	})
	if err != nil {
		return "", fmt.Errorf("render admin fields: %w", err)
	}
	return template.HTML(b.String()), nil
}
