package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fieldtrans/internal/locale"
	"fieldtrans/internal/logger"
)

const (
	// LangParam selects the language for one request and is remembered
	// in LangCookieName.
	LangParam      = "lang"
	LangCookieName = "lang"
)

// RequestLoggerMiddleware logs HTTP requests using logger.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			status := res.Status
			result := "ok"
			if status >= 400 {
				result = "failed"
			}
			attrs := []any{
				"module", "http",
				"action", "request",
				"resource", "http",
				"result", result,
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"language", locale.FromContext(req.Context()),
			}
			switch {
			case status >= 500:
				logger.Error("http request", attrs...)
			case status >= 400:
				logger.Warn("http request", attrs...)
			default:
				logger.Debug("http request", attrs...)
			}

			return nil
		}
	}
}

// LanguageMiddleware stores the request's active language in its context.
// The ?lang= parameter wins and is persisted in a cookie, then the cookie,
// then Accept-Language, then the default language.
func LanguageMiddleware(matcher *locale.Matcher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			lang := ""

			if code, ok := matcher.Explicit(c.QueryParam(LangParam)); ok {
				lang = code
				c.SetCookie(&http.Cookie{
					Name:     LangCookieName,
					Value:    code,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			if lang == "" {
				if cookie, err := c.Cookie(LangCookieName); err == nil {
					if code, ok := matcher.Explicit(cookie.Value); ok {
						lang = code
					}
				}
			}
			if lang == "" {
				lang = matcher.AcceptLanguage(req.Header.Get("Accept-Language"))
			}

			c.SetRequest(req.WithContext(locale.WithLanguage(req.Context(), lang)))
			c.Response().Header().Set("Content-Language", lang)
			return next(c)
		}
	}
}
