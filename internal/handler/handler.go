package handler

import (
	"strconv"
	"storefront/internal/apperror"
	"storefront/internal/auth"

	"github.com/labstack/echo/v4"
)

func identityFrom(c echo.Context) auth.Identity {
	identity, _ := auth.FromContext(c.Request().Context())
	return identity
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid %s", name)
	}
	return uint(id), nil
}

// optionalIDQuery reads a positive integer query parameter. An absent parameter yields nil.
func optionalIDQuery(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, apperror.Validation("invalid %s", name)
	}
	v := uint(id)
	return &v, nil
}
