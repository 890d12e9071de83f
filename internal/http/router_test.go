package http

import (
	"context"
	"database/sql"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"fieldtrans/internal/cache"
	"fieldtrans/internal/contenttype"
	"fieldtrans/internal/handler"
	"fieldtrans/internal/i18n"
	"fieldtrans/internal/locale"
	"fieldtrans/internal/repository"
	"fieldtrans/internal/repository/testutil"
	"fieldtrans/internal/service"
)

type testServer struct {
	e         *echo.Echo
	db        *sql.DB
	productCT int64
}

func newTestServer(t *testing.T, staticDir string) *testServer {
	t.Helper()

	db := testutil.NewTestDB(t)
	registry := contenttype.NewRegistry(repository.NewContentTypeRepository(db))
	tcache := service.NewTranslationCache(cache.NewMemory(), registry, "test", time.Minute)
	translatedRepo := repository.NewTranslatedFieldRepository(db, tcache.Invalidate)
	matcher := locale.NewMatcher([]string{"en-us", "pt-br"}, "en-us")

	translations := service.NewTranslationService(translatedRepo, registry, tcache, matcher)
	products := service.NewProductService(repository.NewProductRepository(db), translations)
	ct, err := registry.Register(context.Background(), products.Definition())
	require.NoError(t, err)

	translator := i18n.NewTranslator("en-us")
	funcs := service.NewTemplateFuncs(translations, registry, translator, AdminPrefix+handler.EditorPath)
	templates := service.NewDynamicTemplateService(repository.NewDynamicTemplateRepository(db), funcs)

	e := NewRouter(
		handler.NewTranslationHandler(translations, translator),
		handler.NewProductHandler(products),
		handler.NewTemplateHandler(templates),
		handler.NewAdminHandler(products, funcs),
		matcher,
		staticDir,
		1000,
	)
	return &testServer{e: e, db: db, productCT: ct.ID}
}

func (s *testServer) do(req *nethttp.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) editorURL(objectID int64, field string) string {
	q := url.Values{
		"content_type": {strconv.FormatInt(s.productCT, 10)},
		"object_id":    {strconv.FormatInt(objectID, 10)},
		"field_name":   {field},
	}
	return AdminPrefix + handler.EditorPath + "?" + q.Encode()
}

func (s *testServer) postEditor(objectID int64, field string, values map[string]string) *httptest.ResponseRecorder {
	form := url.Values{}
	for _, lang := range []string{"en-us", "pt-br", "fr"} {
		if v, ok := values[lang]; ok {
			form.Add("language", lang)
			form.Add("value", v)
		}
	}
	req := httptest.NewRequest(nethttp.MethodPost, s.editorURL(objectID, field), strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.do(req)
}

func (s *testServer) getProduct(t *testing.T, path string, header map[string]string) map[string]string {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := s.do(req)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestEditorRoundTrip(t *testing.T) {
	s := newTestServer(t, "")
	testutil.SeedProduct(t, s.db, 42, "Chair", "A wooden chair")

	rec := s.do(httptest.NewRequest(nethttp.MethodGet, s.editorURL(42, "description"), nil))
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	page := rec.Body.String()
	require.Contains(t, page, `name="language" value="en-us"`)
	require.Contains(t, page, `name="language" value="pt-br"`)
	require.Contains(t, page, "A wooden chair")
	require.Contains(t, page, locale.DisplayName("pt-br"))

	rec = s.postEditor(42, "description", map[string]string{"en-us": "", "pt-br": "Descrição traduzida"})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, `<script type="text/javascript">window.close()</script>`, rec.Body.String())

	body := s.getProduct(t, "/api/products/42?lang=pt-br", nil)
	require.Equal(t, "Descrição traduzida", body["description"])
	require.Equal(t, "Chair", body["name"])
	require.Equal(t, "pt-br", body["language"])

	body = s.getProduct(t, "/api/products/42", nil)
	require.Equal(t, "A wooden chair", body["description"])

	rec = s.postEditor(42, "description", map[string]string{"pt-br": ""})
	require.Equal(t, nethttp.StatusOK, rec.Code)

	body = s.getProduct(t, "/api/products/42?lang=pt-br", nil)
	require.Equal(t, "A wooden chair", body["description"])
}

func TestLanguageSelection(t *testing.T) {
	s := newTestServer(t, "")
	testutil.SeedProduct(t, s.db, 42, "Chair", "A wooden chair")
	testutil.SeedTranslation(t, s.db, "pt-br", s.productCT, 42, "name", "Cadeira")

	body := s.getProduct(t, "/api/products/42", map[string]string{"Accept-Language": "pt-BR,pt;q=0.9"})
	require.Equal(t, "Cadeira", body["name"])

	rec := s.do(httptest.NewRequest(nethttp.MethodGet, "/api/products/42?lang=pt_BR", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "pt-br", rec.Header().Get("Content-Language"))
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, LangCookieName, cookies[0].Name)

	body = s.getProduct(t, "/api/products/42", map[string]string{"Cookie": LangCookieName + "=pt-br"})
	require.Equal(t, "Cadeira", body["name"])

	body = s.getProduct(t, "/api/products/42?lang=xx", map[string]string{"Accept-Language": "ja"})
	require.Equal(t, "Chair", body["name"])
	require.Equal(t, "en-us", body["language"])
}

func TestEditorErrors(t *testing.T) {
	s := newTestServer(t, "")
	testutil.SeedProduct(t, s.db, 42, "Chair", "A wooden chair")

	rec := s.do(httptest.NewRequest(nethttp.MethodGet, s.editorURL(42, "price"), nil))
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"field":"field_name"`)

	rec = s.do(httptest.NewRequest(nethttp.MethodGet, s.editorURL(7, "description"), nil))
	require.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = s.do(httptest.NewRequest(nethttp.MethodGet, AdminPrefix+handler.EditorPath+"?content_type=x", nil))
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = s.postEditor(42, "description", map[string]string{"fr": "Chaise"})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "<form")
	require.Contains(t, rec.Body.String(), "not configured")
}

func TestTranslationsAPI(t *testing.T) {
	s := newTestServer(t, "")
	testutil.SeedProduct(t, s.db, 42, "Chair", "A wooden chair")

	payload := `{"contentTypeId":"` + strconv.FormatInt(s.productCT, 10) + `","objectId":"42","fieldName":"name","translations":[{"language":"pt-br","value":"Cadeira"}]}`
	req := httptest.NewRequest(nethttp.MethodPut, "/api/translations", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := s.do(req)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	q := url.Values{
		"content_type": {strconv.FormatInt(s.productCT, 10)},
		"object_id":    {"42"},
		"field_name":   {"name"},
	}
	rec = s.do(httptest.NewRequest(nethttp.MethodGet, "/api/translations?"+q.Encode(), nil))
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		ContentType  string `json:"contentType"`
		Original     string `json:"original"`
		Translations []struct {
			Language string `json:"language"`
			Value    string `json:"value"`
		} `json:"translations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "catalog.product", resp.ContentType)
	require.Equal(t, "Chair", resp.Original)
	require.Len(t, resp.Translations, 2)
	require.Equal(t, "pt-br", resp.Translations[1].Language)
	require.Equal(t, "Cadeira", resp.Translations[1].Value)
}

func TestPages(t *testing.T) {
	s := newTestServer(t, "")

	payload := `{"title":"Welcome","group":"home","content":"<h1>Hello {{.Query.name}}</h1>"}`
	req := httptest.NewRequest(nethttp.MethodPost, "/api/templates", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := s.do(req)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(httptest.NewRequest(nethttp.MethodGet, "/pages/welcome?name=%3Cb%3E", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "<h1>Hello &lt;b&gt;</h1>", rec.Body.String())

	rec = s.do(httptest.NewRequest(nethttp.MethodGet, "/pages/group/home", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<h1>Hello")

	rec = s.do(httptest.NewRequest(nethttp.MethodGet, "/pages/missing", nil))
	require.Equal(t, nethttp.StatusNotFound, rec.Code)

	req = httptest.NewRequest(nethttp.MethodPost, "/api/templates", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = s.do(req)
	require.Equal(t, nethttp.StatusConflict, rec.Code)
}

func TestAdminProductForm(t *testing.T) {
	s := newTestServer(t, "")
	testutil.SeedProduct(t, s.db, 42, "Chair", "A wooden chair")

	rec := s.do(httptest.NewRequest(nethttp.MethodGet, AdminPrefix+"/products/42", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), "set_translation")
	require.Contains(t, rec.Body.String(), `class="form-row description"`)
	require.Contains(t, rec.Body.String(), `action="/admin/products/42"`)

	form := url.Values{"name": {"Armchair"}, "description": {"A soft chair"}}
	req := httptest.NewRequest(nethttp.MethodPost, AdminPrefix+"/products/42", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec = s.do(req)
	require.Equal(t, nethttp.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(t, AdminPrefix+"/products/42", rec.Header().Get(echo.HeaderLocation))

	body := s.getProduct(t, "/api/products/42", nil)
	require.Equal(t, "Armchair", body["name"])
	require.Equal(t, "A soft chair", body["description"])

	req = httptest.NewRequest(nethttp.MethodPost, AdminPrefix+"/products/7", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	require.Equal(t, nethttp.StatusNotFound, s.do(req).Code)
}

func TestStaticPerLanguage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pt-br"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.txt"), []byte("shared"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pt-br", "logo.txt"), []byte("brasil"), 0o644))
	s := newTestServer(t, dir)

	rec := s.do(httptest.NewRequest(nethttp.MethodGet, "/static/pt-br/logo.txt", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "brasil", rec.Body.String())

	rec = s.do(httptest.NewRequest(nethttp.MethodGet, "/static/en-us/logo.txt", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "shared", rec.Body.String())

	rec = s.do(httptest.NewRequest(nethttp.MethodGet, "/static/logo.txt", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "shared", rec.Body.String())

	rec = s.do(httptest.NewRequest(nethttp.MethodGet, "/static/en-us/missing.txt", nil))
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestStaticCandidates(t *testing.T) {
	m := locale.NewMatcher([]string{"en-us", "pt-br"}, "en-us")
	require.Equal(t, []string{"pt-br/a/b.png", "a/b.png"}, staticCandidates("pt-br/a/b.png", m))
	require.Equal(t, []string{"img/b.png"}, staticCandidates("img/b.png", m))
	require.Equal(t, []string{"b.png"}, staticCandidates("b.png", m))
}
