package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"fieldtrans/internal/i18n"
	"fieldtrans/internal/locale"
	"fieldtrans/internal/model"
	"fieldtrans/internal/service"
)

// EditorPath is where the translation popup is served, relative to the
// admin group.
const EditorPath = "/i18n/set-field-translation"

const closeWindowScript = `<script type="text/javascript">window.close()</script>`

const editorTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Error}}<p class="errornote">{{.InvalidForm}} {{.Error}}</p>{{end}}
<fieldset class="original">
<legend>{{.OriginalLabel}}</legend>
<div>{{.Original}}</div>
</fieldset>
<form method="post" action="{{.Action}}">
<input type="hidden" name="content_type" value="{{.ContentTypeID}}">
<input type="hidden" name="object_id" value="{{.ObjectID}}">
<input type="hidden" name="field_name" value="{{.FieldName}}">
{{range .Rows}}<div class="form-row">
<input type="hidden" name="language" value="{{.Language}}">
<label for="value-{{.Language}}">{{.DisplayName}}</label>
<textarea id="value-{{.Language}}" name="value" rows="4" cols="70">{{.Value}}</textarea>
</div>
{{end}}<input type="submit" value="{{.Save}}">
</form>
</body>
</html>`

var editorTpl = template.Must(template.New("editor").Parse(editorTemplate))

type editorRow struct {
	Language    string
	DisplayName string
	Value       string
}

type editorPage struct {
	Lang          string
	Title         string
	InvalidForm   string
	Error         string
	OriginalLabel string
	Original      string
	Action        string
	ContentTypeID string
	ObjectID      string
	FieldName     string
	Rows          []editorRow
	Save          string
}

type TranslationHandler struct {
	service    service.TranslationService
	translator *i18n.Translator
}

type translationValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

type translationRow struct {
	ID        string `json:"id"`
	Language  string `json:"language"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updatedAt"`
}

type translationsResponse struct {
	ContentType  string           `json:"contentType"`
	ObjectID     string           `json:"objectId"`
	FieldName    string           `json:"fieldName"`
	Original     string           `json:"original"`
	Translations []translationRow `json:"translations"`
}

type saveTranslationsRequest struct {
	ContentTypeID string             `json:"contentTypeId"`
	ObjectID      string             `json:"objectId"`
	FieldName     string             `json:"fieldName"`
	Translations  []translationValue `json:"translations"`
}

func NewTranslationHandler(service service.TranslationService, translator *i18n.Translator) *TranslationHandler {
	return &TranslationHandler{service: service, translator: translator}
}

// RegisterRoutes mounts the popup editor on the admin group.
func (h *TranslationHandler) RegisterRoutes(g *echo.Group) {
	g.GET(EditorPath, h.Editor)
	g.POST(EditorPath, h.SaveEditor)
}

// RegisterAPIRoutes mounts the JSON twin of the editor.
func (h *TranslationHandler) RegisterAPIRoutes(g *echo.Group) {
	g.GET("/translations", h.List)
	g.PUT("/translations", h.SaveBatch)
}

type editorTarget struct {
	contentTypeID int64
	objectID      int64
	fieldName     string
}

func readEditorTarget(c echo.Context) (editorTarget, error) {
	ctID, err := parseIDQuery(c, "content_type")
	if err != nil {
		return editorTarget{}, &service.FieldError{Field: "content_type", Message: "invalid content type"}
	}
	objectID, err := parseIDQuery(c, "object_id")
	if err != nil {
		return editorTarget{}, &service.FieldError{Field: "object_id", Message: "invalid object ID"}
	}
	field := queryOrForm(c, "field_name")
	if field == "" {
		return editorTarget{}, &service.FieldError{Field: "field_name", Message: "required"}
	}
	return editorTarget{contentTypeID: ctID, objectID: objectID, fieldName: field}, nil
}

func (h *TranslationHandler) t(lang, key string, data map[string]any) string {
	if h.translator == nil {
		return key
	}
	return h.translator.T(lang, key, data)
}

func (h *TranslationHandler) renderEditor(c echo.Context, status int, editor service.Editor, values map[string]string, formErr string) error {
	lang := locale.FromContext(c.Request().Context())
	page := editorPage{
		Lang:          lang,
		Title:         h.t(lang, "EditorTitle", map[string]any{"Field": editor.FieldName}),
		InvalidForm:   h.t(lang, "InvalidForm", nil),
		Error:         formErr,
		OriginalLabel: h.t(lang, "OriginalValue", nil),
		Original:      editor.Original,
		Action:        c.Request().URL.Path,
		ContentTypeID: strconv.FormatInt(editor.ContentType.ID, 10),
		ObjectID:      strconv.FormatInt(editor.ObjectID, 10),
		FieldName:     editor.FieldName,
		Save:          h.t(lang, "Save", nil),
	}
	for _, row := range editor.Rows {
		value := row.Value
		if v, ok := values[row.Language]; ok {
			value = v
		}
		page.Rows = append(page.Rows, editorRow{
			Language:    row.Language,
			DisplayName: locale.DisplayName(row.Language),
			Value:       value,
		})
	}

	var b strings.Builder
	if err := editorTpl.Execute(&b, page); err != nil {
		return writeServiceError(c, err)
	}
	return c.HTML(status, b.String())
}

// Editor renders the translation popup for one field.
// @Summary Translation editor
// @Description Ensure a translation row exists for every configured language and render the popup form
// @Tags translations
// @Produce html
// @Param content_type query int true "Content type ID"
// @Param object_id query int true "Object ID"
// @Param field_name query string true "Field name"
// @Success 200 {string} string "HTML form"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /admin/i18n/set-field-translation [get]
func (h *TranslationHandler) Editor(c echo.Context) error {
	target, err := readEditorTarget(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	editor, err := h.service.OpenEditor(c.Request().Context(), target.contentTypeID, target.objectID, target.fieldName)
	if err != nil {
		return writeServiceError(c, err)
	}
	return h.renderEditor(c, http.StatusOK, editor, nil, "")
}

// SaveEditor stores the submitted popup form and closes the window.
// @Summary Save translations
// @Description Save every submitted language value in one batch
// @Tags translations
// @Accept x-www-form-urlencoded
// @Produce html
// @Success 200 {string} string "script closing the popup"
// @Failure 400 {string} string "HTML form with errors"
// @Router /admin/i18n/set-field-translation [post]
func (h *TranslationHandler) SaveEditor(c echo.Context) error {
	target, err := readEditorTarget(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	form, err := c.FormParams()
	if err != nil {
		return writeServiceError(c, &service.FieldError{Field: "form", Message: "invalid form"})
	}
	languages := form["language"]
	values := form["value"]
	if len(languages) != len(values) {
		return writeServiceError(c, &service.FieldError{Field: "value", Message: "each language needs exactly one value"})
	}

	submitted := make([]service.LanguageValue, 0, len(languages))
	byLang := make(map[string]string, len(languages))
	for i, lang := range languages {
		submitted = append(submitted, service.LanguageValue{Language: lang, Value: values[i]})
		byLang[locale.Format(lang)] = values[i]
	}

	ctx := c.Request().Context()
	if _, err := h.service.SaveEditor(ctx, target.contentTypeID, target.objectID, target.fieldName, submitted); err != nil {
		var fieldErr *service.FieldError
		if !errors.As(err, &fieldErr) {
			return writeServiceError(c, err)
		}
		editor, openErr := h.service.OpenEditor(ctx, target.contentTypeID, target.objectID, target.fieldName)
		if openErr != nil {
			return writeServiceError(c, openErr)
		}
		return h.renderEditor(c, http.StatusBadRequest, editor, byLang, fieldErr.Error())
	}
	return c.HTML(http.StatusOK, closeWindowScript)
}

// List returns every language row of one field.
// @Summary List field translations
// @Description Ensure a row exists for every configured language and return them
// @Tags translations
// @Produce json
// @Param content_type query int true "Content type ID"
// @Param object_id query int true "Object ID"
// @Param field_name query string true "Field name"
// @Success 200 {object} translationsResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /translations [get]
func (h *TranslationHandler) List(c echo.Context) error {
	target, err := readEditorTarget(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	editor, err := h.service.OpenEditor(c.Request().Context(), target.contentTypeID, target.objectID, target.fieldName)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, translationsResponse{
		ContentType:  editor.ContentType.Key().String(),
		ObjectID:     strconv.FormatInt(editor.ObjectID, 10),
		FieldName:    editor.FieldName,
		Original:     editor.Original,
		Translations: toTranslationRows(editor.Rows),
	})
}

// SaveBatch stores several language values of one field.
// @Summary Save field translations
// @Tags translations
// @Accept json
// @Produce json
// @Param body body saveTranslationsRequest true "Translations to save"
// @Success 200 {array} translationRow
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /translations [put]
func (h *TranslationHandler) SaveBatch(c echo.Context) error {
	var req saveTranslationsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	ctID, err := strconv.ParseInt(req.ContentTypeID, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid content type", Field: "contentTypeId"})
	}
	objectID, err := strconv.ParseInt(req.ObjectID, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid object ID", Field: "objectId"})
	}

	values := make([]service.LanguageValue, 0, len(req.Translations))
	for _, v := range req.Translations {
		values = append(values, service.LanguageValue{Language: v.Language, Value: v.Value})
	}
	saved, err := h.service.SaveEditor(c.Request().Context(), ctID, objectID, strings.TrimSpace(req.FieldName), values)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTranslationRows(saved))
}

func toTranslationRows(rows []model.TranslatedField) []translationRow {
	out := make([]translationRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, translationRow{
			ID:        strconv.FormatInt(row.ID, 10),
			Language:  row.Language,
			Value:     row.Value,
			UpdatedAt: row.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
