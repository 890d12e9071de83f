package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fieldtrans/internal/model"
	"fieldtrans/internal/service"
)

type TemplateHandler struct {
	service service.DynamicTemplateService
}

type templateRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Group   string `json:"group"`
	Content string `json:"content"`
}

type templateResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Group     string `json:"group,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewTemplateHandler(service service.DynamicTemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// RegisterRoutes mounts the JSON management endpoints.
func (h *TemplateHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/templates", h.Create)
	g.GET("/templates", h.List)
	g.GET("/templates/:slug", h.Get)
	g.PUT("/templates/:slug", h.Update)
}

// RegisterPageRoutes mounts the rendered pages.
func (h *TemplateHandler) RegisterPageRoutes(g *echo.Group) {
	g.GET("/group/:group", h.RenderGroup)
	g.GET("/:slug", h.Render)
}

func (h *TemplateHandler) bind(c echo.Context) (service.DynamicTemplateInput, error) {
	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return service.DynamicTemplateInput{}, err
	}
	return service.DynamicTemplateInput{Title: req.Title, Slug: req.Slug, Group: req.Group, Content: req.Content}, nil
}

// Create stores a template.
// @Summary Create a dynamic template
// @Tags templates
// @Accept json
// @Produce json
// @Param template body templateRequest true "Template"
// @Success 201 {object} templateResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	in, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	tpl, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toTemplateResponse(tpl))
}

// List returns every template.
// @Summary List dynamic templates
// @Tags templates
// @Produce json
// @Success 200 {array} templateResponse
// @Router /templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	templates, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]templateResponse, 0, len(templates))
	for _, tpl := range templates {
		response = append(response, toTemplateResponse(tpl))
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns one template by slug.
// @Summary Get a dynamic template
// @Tags templates
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} templateResponse
// @Failure 404 {object} errorResponse
// @Router /templates/{slug} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	tpl, err := h.service.Get(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTemplateResponse(tpl))
}

// Update replaces a template.
// @Summary Update a dynamic template
// @Tags templates
// @Accept json
// @Produce json
// @Param slug path string true "Slug"
// @Param template body templateRequest true "Template"
// @Success 200 {object} templateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /templates/{slug} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	in, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	tpl, err := h.service.Update(c.Request().Context(), c.Param("slug"), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTemplateResponse(tpl))
}

// Render serves a template as an HTML page in the active language.
// @Summary Render a dynamic template
// @Tags pages
// @Produce html
// @Param slug path string true "Slug"
// @Success 200 {string} string "HTML"
// @Failure 404 {object} errorResponse
// @Router /pages/{slug} [get]
func (h *TemplateHandler) Render(c echo.Context) error {
	out, err := h.service.Render(c.Request().Context(), c.Param("slug"), pageData(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.HTML(http.StatusOK, string(out))
}

// RenderGroup serves every template of a group as one HTML page.
// @Summary Render a template group
// @Tags pages
// @Produce html
// @Param group path string true "Group"
// @Success 200 {string} string "HTML"
// @Router /pages/group/{group} [get]
func (h *TemplateHandler) RenderGroup(c echo.Context) error {
	out, err := h.service.RenderGroup(c.Request().Context(), c.Param("group"), pageData(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.HTML(http.StatusOK, string(out))
}

// pageData exposes the query string to page templates as .Query.
func pageData(c echo.Context) map[string]any {
	query := make(map[string]string)
	for key, values := range c.QueryParams() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}
	return map[string]any{"Query": query}
}

func toTemplateResponse(tpl model.DynamicTemplate) templateResponse {
	return templateResponse{
		ID:        strconv.FormatInt(tpl.ID, 10),
		Title:     tpl.Title,
		Slug:      tpl.Slug,
		Group:     tpl.Group,
		Content:   tpl.Content,
		CreatedAt: tpl.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: tpl.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
