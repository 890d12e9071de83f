package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parseIDQuery reads a numeric query parameter, falling back to the form
// body so POSTed popups can carry the target in either place.
func parseIDQuery(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		raw = c.FormValue(name)
	}
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func queryOrForm(c echo.Context, name string) string {
	if v := c.QueryParam(name); v != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(c.FormValue(name))
}
