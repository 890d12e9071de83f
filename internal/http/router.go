package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"fieldtrans/internal/handler"
	"fieldtrans/internal/locale"
)

// AdminPrefix is the path of the admin group.
const AdminPrefix = "/admin"

func NewRouter(
	translationHandler *handler.TranslationHandler,
	productHandler *handler.ProductHandler,
	templateHandler *handler.TemplateHandler,
	adminHandler *handler.AdminHandler,
	matcher *locale.Matcher,
	staticDir string,
	adminRate float64,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(RequestLoggerMiddleware())
	e.Use(LanguageMiddleware(matcher))

	admin := e.Group(AdminPrefix, middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(adminRate))))
	translationHandler.RegisterRoutes(admin)
	adminHandler.RegisterRoutes(admin)

	api := e.Group("/api")
	translationHandler.RegisterAPIRoutes(api)
	productHandler.RegisterRoutes(api)
	templateHandler.RegisterRoutes(api)

	templateHandler.RegisterPageRoutes(e.Group("/pages"))

	registerStatic(e, staticDir, matcher)

	return e
}
