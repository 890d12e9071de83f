package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"fieldtrans/internal/service"
)

const productAdminTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Product.Name}}</title>
{{i18nAdminFields .Product}}
</head>
<body>
<form method="post" action="{{.Action}}">
<div class="form-row name">
<label for="id_name">name</label>
<input id="id_name" name="name" value="{{.Product.Name}}">
</div>
<div class="form-row description">
<label for="id_description">description</label>
<textarea id="id_description" name="description">{{.Product.Description}}</textarea>
</div>
<input type="submit" value="Save">
</form>
</body>
</html>`

// AdminHandler serves the product change form with its translation links.
type AdminHandler struct {
	products service.ProductService
	funcs    *service.TemplateFuncs
}

func NewAdminHandler(products service.ProductService, funcs *service.TemplateFuncs) *AdminHandler {
	return &AdminHandler{products: products, funcs: funcs}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products/:id", h.ProductForm)
	g.POST("/products/:id", h.SaveProduct)
}

// ProductForm renders the admin change form of a product.
// @Summary Product change form
// @Tags admin
// @Produce html
// @Param id path int true "Product ID"
// @Success 200 {string} string "HTML"
// @Failure 404 {object} errorResponse
// @Router /admin/products/{id} [get]
func (h *AdminHandler) ProductForm(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	ctx := c.Request().Context()
	p, err := h.products.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}

	tpl, err := template.New("product_admin").Funcs(h.funcs.FuncMap(ctx)).Parse(productAdminTemplate)
	if err != nil {
		return writeServiceError(c, err)
	}
	var b strings.Builder
	if err := tpl.Execute(&b, map[string]any{"Product": &p, "Action": c.Request().URL.Path}); err != nil {
		return writeServiceError(c, err)
	}
	return c.HTML(http.StatusOK, b.String())
}

// SaveProduct stores the submitted change form and redirects back to it.
// @Summary Save product change form
// @Tags admin
// @Accept x-www-form-urlencoded
// @Param id path int true "Product ID"
// @Success 303 {string} string "redirect to the form"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /admin/products/{id} [post]
func (h *AdminHandler) SaveProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if _, err := h.products.Update(c.Request().Context(), id, c.FormValue("name"), c.FormValue("description")); err != nil {
		return writeServiceError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, c.Request().URL.Path)
}
