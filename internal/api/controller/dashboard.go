package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wagedash/internal/domain"
)

func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (c *Controller) GetDashboard(ctx echo.Context) error {
	var sel domain.Selections
	if err := ctx.Bind(&sel); err != nil {
		return err
	}

	resp, err := c.service.Render(ctx.Request().Context(), sel)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) GetFacets(ctx echo.Context) error {
	resp, err := c.service.Facets(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}
