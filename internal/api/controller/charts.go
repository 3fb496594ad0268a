package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/render"
)

const mimeImagePNG = "image/png"

func (c *Controller) GetChart(ctx echo.Context) error {
	var sel domain.Selections
	if err := ctx.Bind(&sel); err != nil {
		return err
	}

	resp, err := c.service.RenderChart(ctx.Request().Context(), domain.Chart(ctx.Param("name")), sel)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) GetHeatmapPNG(ctx echo.Context) error {
	var sel domain.Selections
	if err := ctx.Bind(&sel); err != nil {
		return err
	}

	section, err := c.service.Heatmap(ctx.Request().Context(), sel)
	if err != nil {
		return err
	}

	return blobPNG(ctx, func() ([]byte, error) { return render.HeatmapPNG(section) })
}

func (c *Controller) GetBubblePNG(ctx echo.Context) error {
	section, err := c.service.Bubble(ctx.Request().Context())
	if err != nil {
		return err
	}

	return blobPNG(ctx, func() ([]byte, error) { return render.BubblePNG(section) })
}

func (c *Controller) GetTrendPNG(ctx echo.Context) error {
	var sel domain.Selections
	if err := ctx.Bind(&sel); err != nil {
		return err
	}

	section, err := c.service.Trend(ctx.Request().Context(), sel)
	if err != nil {
		return err
	}

	return blobPNG(ctx, func() ([]byte, error) { return render.TrendPNG(section) })
}

func (c *Controller) GetIndustryPNG(ctx echo.Context) error {
	var sel domain.Selections
	if err := ctx.Bind(&sel); err != nil {
		return err
	}

	section, err := c.service.Industry(ctx.Request().Context(), sel)
	if err != nil {
		return err
	}

	return blobPNG(ctx, func() ([]byte, error) { return render.IndustryPNG(section) })
}

// blobPNG отдает картинку. На пустую панель отвечает 404, чтобы <img> не показывал битый файл.
func blobPNG(ctx echo.Context, draw func() ([]byte, error)) error {
	data, err := draw()
	if errors.Is(err, render.ErrNoData) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, mimeImagePNG, data)
}
