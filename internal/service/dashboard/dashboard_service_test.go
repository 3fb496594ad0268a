package dashboard

import (
	"context"
	"testing"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wageColumns = []string{domain.ColAverageWage, domain.ColBaseSalary, domain.ColBonus}

func mustTable(t *testing.T, columns []string, rows ...[]string) *table.Table {
	t.Helper()
	tbl, err := table.New(columns, rows)
	require.NoError(t, err)
	return tbl
}

func testDataset(t *testing.T) *domain.Dataset {
	t.Helper()

	national := mustTable(t, append([]string{domain.ColYear, domain.ColAge}, wageColumns...),
		[]string{"2018", "年齢計", "490", "360", "85"},
		[]string{"2018", "20〜24歳", "250", "210", "30"},
		[]string{"2019", "年齢計", "500", "370", "90"},
		[]string{"2019", "20〜24歳", "260", "220", "32"},
		[]string{"2019", "25〜29歳", "330", "270", "55"},
	)

	industry := mustTable(t, append([]string{domain.ColYear, domain.ColIndustry, domain.ColAge}, wageColumns...),
		[]string{"2017", "製造業", "年齢計", "480", "360", "100"},
		[]string{"2019", "製造業", "年齢計", "512.3", "370", "110"},
		[]string{"2019", "医療，福祉", "年齢計", "420", "330", "70"},
		[]string{"2019", "製造業", "20〜24歳", "270", "230", "36"},
	)

	prefecture := mustTable(t, append([]string{domain.ColYear, domain.ColPrefCode, domain.ColPrefecture, domain.ColAge}, wageColumns...),
		[]string{"2018", "1", "北海道", "年齢計", "290", "240", "50"},
		[]string{"2019", "1", "北海道", "年齢計", "300", "250", "50"},
		[]string{"2019", "1", "北海道", "20〜24歳", "200", "180", "20"},
		[]string{"2018", "13", "東京都", "年齢計", "490", "370", "110"},
		[]string{"2019", "13", "東京都", "年齢計", "500", "380", "120"},
		[]string{"2019", "47", "沖縄県", "年齢計", "280", "230", "30"},
	)

	coordinates := mustTable(t, []string{domain.ColPrefecture, domain.ColLat, domain.ColLon},
		[]string{"北海道", "43.06417", "141.34694"},
		[]string{"東京都", "35.68944", "139.69167"},
	)

	return &domain.Dataset{
		National:    national,
		Industry:    industry,
		Prefecture:  prefecture,
		Coordinates: coordinates,
	}
}

func newService(t *testing.T) *Service {
	return NewDashboardService(testDataset(t))
}

func TestRenderDefaults(t *testing.T) {
	d, err := newService(t).Render(context.Background(), domain.Selections{})
	require.NoError(t, err)

	assert.Equal(t, domain.DashboardTitle, d.Title)
	assert.Equal(t, domain.Selections{
		MapYear:      2019,
		Prefecture:   "北海道",
		IndustryYear: 2017,
		WageType:     string(domain.WageAverage),
	}, d.Selections)
	assert.Equal(t, domain.Attribution, d.Attribution)
	assert.NotNil(t, d.Heatmap)
	assert.NotNil(t, d.Trend)
	assert.NotNil(t, d.Bubble)
	assert.NotNil(t, d.Industry)
}

func TestRenderIdempotent(t *testing.T) {
	svc := newService(t)
	sel := domain.Selections{Prefecture: "東京都", IndustryYear: 2019, WageType: "bonus", ShowTable: true}

	first, err := svc.Render(context.Background(), sel)
	require.NoError(t, err)
	second, err := svc.Render(context.Background(), sel)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHeatmap(t *testing.T) {
	d, err := newService(t).Render(context.Background(), domain.Selections{ShowTable: true})
	require.NoError(t, err)
	h := d.Heatmap

	assert.Equal(t, "■2019年：一人当たり平均賃金ヒートマップ", h.Header)
	assert.Equal(t, 139.691648, h.View.Longitude)
	assert.Equal(t, 35.689185, h.View.Latitude)
	assert.Equal(t, "HeatmapLayer", h.Layer.Type)
	assert.Equal(t, []string{"lon", "lat"}, h.Layer.GetPosition)
	assert.Equal(t, domain.ColRelativeWage, h.Layer.GetWeight)

	// 沖縄県 has no coordinates and is dropped by the join
	require.Len(t, h.Points, 2)
	assert.Equal(t, "北海道", h.Points[0].Prefecture)
	assert.Equal(t, 300.0, h.Points[0].AverageWage)
	assert.Equal(t, 0.0, h.Points[0].Weight)
	assert.Equal(t, "東京都", h.Points[1].Prefecture)
	assert.Equal(t, 1.0, h.Points[1].Weight)
	assert.Equal(t, 35.68944, h.Points[1].Lat)

	require.Len(t, h.Data, 2)
	assert.Equal(t, 1.0, h.Data[1][domain.ColRelativeWage])

	require.NotNil(t, h.Table)
	assert.Contains(t, h.Table.Columns, domain.ColRelativeWage)
	assert.Len(t, h.Table.Rows, 2)
}

func TestHeatmapWithoutTable(t *testing.T) {
	section, err := newService(t).RenderChart(context.Background(), domain.ChartHeatmap, domain.Selections{})
	require.NoError(t, err)
	assert.Nil(t, section.(*domain.HeatmapSection).Table)
}

func TestHeatmapUnknownYear(t *testing.T) {
	section, err := newService(t).RenderChart(context.Background(), domain.ChartHeatmap, domain.Selections{MapYear: 1990})
	require.NoError(t, err)

	h := section.(*domain.HeatmapSection)
	assert.Empty(t, h.Points)
	assert.Empty(t, h.Data)
}

func TestHeatmapSinglePrefecture(t *testing.T) {
	ds := testDataset(t)
	ds.Coordinates = mustTable(t, []string{domain.ColPrefecture, domain.ColLat, domain.ColLon},
		[]string{"東京都", "35.68944", "139.69167"})

	section, err := NewDashboardService(ds).RenderChart(context.Background(), domain.ChartHeatmap, domain.Selections{})
	require.NoError(t, err)

	h := section.(*domain.HeatmapSection)
	require.Len(t, h.Points, 1)
	assert.Equal(t, 0.0, h.Points[0].Weight, "degenerate range maps to 0")
}

func TestTrend(t *testing.T) {
	section, err := newService(t).Trend(context.Background(), domain.Selections{Prefecture: "東京都"})
	require.NoError(t, err)

	assert.Equal(t, "東京都", section.Prefecture)
	assert.Equal(t, "line", section.Chart.Type)
	assert.Equal(t, domain.ColYear, section.Chart.X)
	assert.Equal(t, []string{domain.ColNationalAverageWage, domain.ColAverageWage}, section.Chart.Y)
	assert.Equal(t, []map[string]interface{}{
		{domain.ColYear: 2018.0, domain.ColNationalAverageWage: 490.0, domain.ColAverageWage: 490.0},
		{domain.ColYear: 2019.0, domain.ColNationalAverageWage: 500.0, domain.ColAverageWage: 500.0},
	}, section.Chart.Data)
	assert.Equal(t, domain.YearData{2018: 490, 2019: 500}, section.NationalSeries)
	assert.Equal(t, domain.YearData{2018: 490, 2019: 500}, section.PrefectureSeries)
}

func TestTrendPartialYears(t *testing.T) {
	section, err := newService(t).Trend(context.Background(), domain.Selections{Prefecture: "沖縄県"})
	require.NoError(t, err)
	assert.Equal(t, domain.YearData{2019: 500}, section.NationalSeries)
	assert.Equal(t, domain.YearData{2019: 280}, section.PrefectureSeries)
}

func TestTrendMisspelledPrefecture(t *testing.T) {
	section, err := newService(t).Trend(context.Background(), domain.Selections{Prefecture: "東京"})
	require.NoError(t, err)
	assert.Empty(t, section.Chart.Data)
	assert.Empty(t, section.PrefectureSeries)
}

func TestBubble(t *testing.T) {
	section, err := newService(t).RenderChart(context.Background(), domain.ChartBubble, domain.Selections{})
	require.NoError(t, err)

	b := section.(*domain.BubbleSection)
	assert.Equal(t, "scatter", b.Chart.Type)
	assert.Equal(t, []float64{150, 700}, b.Chart.RangeX)
	assert.Equal(t, []float64{0, 150}, b.Chart.RangeY)
	assert.Equal(t, 38, b.Chart.SizeMax)
	assert.Equal(t, domain.ColYear, b.Chart.AnimationFrame)

	require.Len(t, b.Chart.Data, 3)
	for _, rec := range b.Chart.Data {
		assert.NotEqual(t, domain.AgeAll, rec[domain.ColAge])
	}
}

func TestIndustry(t *testing.T) {
	tests := []struct {
		name      string
		sel       domain.Selections
		wantType  domain.WageType
		wantMaxX  float64
		wantCount int
	}{
		{name: "average", sel: domain.Selections{IndustryYear: 2019}, wantType: domain.WageAverage, wantMaxX: 562.3, wantCount: 3},
		{name: "bonus alias", sel: domain.Selections{IndustryYear: 2019, WageType: "bonus"}, wantType: domain.WageBonus, wantMaxX: 160, wantCount: 3},
		{name: "column name", sel: domain.Selections{IndustryYear: 2019, WageType: domain.ColBaseSalary}, wantType: domain.WageBaseSalary, wantMaxX: 420, wantCount: 3},
		{name: "default year", sel: domain.Selections{}, wantType: domain.WageAverage, wantMaxX: 530, wantCount: 1},
		{name: "absent year", sel: domain.Selections{IndustryYear: 2000}, wantType: domain.WageAverage, wantMaxX: 50, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, err := newService(t).Industry(context.Background(), tt.sel)
			require.NoError(t, err)

			assert.Equal(t, tt.wantType, section.WageType)
			assert.Equal(t, string(tt.wantType), section.Chart.X)
			assert.Equal(t, []float64{0, tt.wantMaxX}, section.Chart.RangeX)
			assert.Equal(t, "h", section.Chart.Orientation)
			assert.Equal(t, domain.ColAge, section.Chart.AnimationFrame)
			assert.Len(t, section.Chart.Data, tt.wantCount)
			assert.Len(t, section.Records, tt.wantCount)
		})
	}
}

func TestInvalidWageType(t *testing.T) {
	_, err := newService(t).Render(context.Background(), domain.Selections{WageType: "salary"})
	require.ErrorIs(t, err, constants.ErrInvalidSelection)
}

func TestUnknownChart(t *testing.T) {
	_, err := newService(t).RenderChart(context.Background(), domain.Chart("pie"), domain.Selections{})
	require.ErrorIs(t, err, constants.ErrUnknownChart)
}

func TestFacets(t *testing.T) {
	f, err := newService(t).Facets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Year{2018, 2019}, f.MapYears)
	assert.Equal(t, []string{"北海道", "東京都", "沖縄県"}, f.Prefectures)
	assert.Equal(t, []domain.Year{2017, 2019}, f.IndustryYears)
	assert.Equal(t, domain.WageTypes, f.WageTypes)
}

func TestBlankWageColumn(t *testing.T) {
	ds := testDataset(t)
	ds.Prefecture = mustTable(t, append([]string{domain.ColYear, domain.ColPrefecture, domain.ColAge}, wageColumns...),
		[]string{"2019", "北海道", "年齢計", "", "250", "50"},
		[]string{"2019", "東京都", "年齢計", "", "380", "120"},
	)
	ds.Industry = mustTable(t, append([]string{domain.ColYear, domain.ColIndustry, domain.ColAge}, wageColumns...),
		[]string{"2019", "製造業", "年齢計", "512.3", "370", ""},
		[]string{"2019", "医療，福祉", "年齢計", "420", "330", ""},
	)

	d, err := NewDashboardService(ds).Render(context.Background(), domain.Selections{WageType: "bonus", ShowTable: true})
	require.NoError(t, err)

	require.Len(t, d.Heatmap.Points, 2)
	for _, p := range d.Heatmap.Points {
		assert.Equal(t, 0.0, p.Weight)
	}
	assert.Nil(t, d.Heatmap.Data[0][domain.ColRelativeWage])
	assert.Contains(t, d.Heatmap.Table.Columns, domain.ColRelativeWage)

	assert.Equal(t, []float64{0, 50}, d.Industry.Chart.RangeX)
	assert.Len(t, d.Industry.Records, 2)
}

func TestBubbleRecords(t *testing.T) {
	section, err := newService(t).Bubble(context.Background())
	require.NoError(t, err)
	require.Len(t, section.Records, 3)
	assert.Equal(t, domain.WageRecord{Year: 2018, Age: "20〜24歳", AverageWage: 250, BaseSalary: 210, Bonus: 30}, section.Records[0])
}

func TestHeatmapSection(t *testing.T) {
	section, err := newService(t).Heatmap(context.Background(), domain.Selections{MapYear: 2018})
	require.NoError(t, err)
	assert.Equal(t, 2018, section.Year)
	assert.Len(t, section.Points, 2)
}
