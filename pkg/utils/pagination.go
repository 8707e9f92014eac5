package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetPaginationParams extracts limit/offset query parameters from the
// request, falling back to defaultLimit. Limits are capped at 100.
func GetPaginationParams(c echo.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}

	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		offset = v
	}

	return limit, offset
}
