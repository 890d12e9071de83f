package http

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"fieldtrans/internal/locale"
	"fieldtrans/internal/logger"
)

// registerStatic serves dir under /static/. Translated values point at
// /static/<lang>/..., which is looked up in dir/<lang> first and falls back
// to the shared file in dir.
func registerStatic(e *echo.Echo, dir string, matcher *locale.Matcher) {
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("static dir missing", "module", "http", "action", "request", "resource", "http", "result", "failed", "dir", dir)
		return
	}

	logger.Info("static assets enabled", "module", "http", "action", "request", "resource", "http", "result", "ok", "dir", dir)

	e.GET("/static/*", func(c echo.Context) error {
		cleanPath := strings.TrimPrefix(path.Clean("/"+c.Param("*")), "/")
		if cleanPath == "" || cleanPath == "." {
			return echo.ErrNotFound
		}

		for _, candidate := range staticCandidates(cleanPath, matcher) {
			full := filepath.Join(dir, filepath.FromSlash(candidate))
			fileInfo, err := os.Stat(full)
			if err == nil && !fileInfo.IsDir() {
				logger.Debug("static file served", "module", "http", "action", "fetch", "resource", "http", "result", "ok", "path", candidate)
				return c.File(full)
			}
		}
		return echo.ErrNotFound
	})
}

// staticCandidates lists the files that may serve p, most specific first.
func staticCandidates(p string, matcher *locale.Matcher) []string {
	lang, rest, ok := strings.Cut(p, "/")
	if !ok || matcher == nil || !matcher.Supported(lang) {
		return []string{p}
	}
	return []string{p, rest}
}
