package controller

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wagedash/internal/domain"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

var bubbleColumns = []string{domain.ColYear, domain.ColAge, domain.ColAverageWage, domain.ColBaseSalary, domain.ColBonus}

type pageData struct {
	Dashboard     *domain.Dashboard
	Facets        *domain.Facets
	HeatmapURL    string
	TrendURL      string
	BubbleURL     string
	IndustryURL   string
	BubbleColumns []string
	BubbleRows    [][]string
}

// Page рисует дашборд целиком на сервере. Графики подтягиваются
// картинками с PNG-эндпоинтов с тем же выбором фасетов.
func (c *Controller) Page(ctx echo.Context) error {
	var sel domain.Selections
	if err := ctx.Bind(&sel); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	dash, err := c.service.Render(reqCtx, sel)
	if err != nil {
		return err
	}
	facets, err := c.service.Facets(reqCtx)
	if err != nil {
		return err
	}

	query := selectionQuery(dash.Selections)
	data := pageData{
		Dashboard:     dash,
		Facets:        facets,
		HeatmapURL:    "/api/v1/charts/heatmap.png?" + query,
		TrendURL:      "/api/v1/charts/trend.png?" + query,
		BubbleURL:     "/api/v1/charts/bubble.png",
		IndustryURL:   "/api/v1/charts/industry.png?" + query,
		BubbleColumns: bubbleColumns,
		BubbleRows:    recordRows(dash.Bubble.Chart.Data, bubbleColumns),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	return ctx.HTMLBlob(http.StatusOK, buf.Bytes())
}

func selectionQuery(sel domain.Selections) string {
	q := url.Values{}
	q.Set("map_year", strconv.Itoa(sel.MapYear))
	q.Set("prefecture", sel.Prefecture)
	q.Set("industry_year", strconv.Itoa(sel.IndustryYear))
	q.Set("wage_type", sel.WageType)
	return q.Encode()
}

func recordRows(records []map[string]interface{}, columns []string) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := rec[col]; ok && v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
