package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fieldtrans/internal/model"
	"fieldtrans/internal/service"
)

type ProductHandler struct {
	service service.ProductService
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type productResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type localizedProductResponse struct {
	productResponse
	Language string `json:"language"`
}

func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/products", h.Create)
	g.GET("/products/:id", h.Get)
	g.PUT("/products/:id", h.Update)
}

// Create creates a product.
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body productRequest true "Product"
// @Success 201 {object} productResponse
// @Failure 400 {object} errorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	p, err := h.service.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toProductResponse(p))
}

// Get returns a product with its fields in the active language.
// @Summary Get a localized product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Param lang query string false "Language code"
// @Success 200 {object} localizedProductResponse
// @Failure 404 {object} errorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	lp, err := h.service.Localized(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := toProductResponse(lp.Product)
	resp.Name = lp.Name
	resp.Description = lp.Description
	return c.JSON(http.StatusOK, localizedProductResponse{productResponse: resp, Language: lp.Language})
}

// Update replaces the live values of a product.
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body productRequest true "Product"
// @Success 200 {object} productResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	p, err := h.service.Update(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:          strconv.FormatInt(p.ID, 10),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
