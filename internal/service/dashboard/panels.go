package dashboard

import (
	"errors"
	"fmt"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/table"
	"github.com/shopspring/decimal"
)

// центр карты: Токио
var defaultMapView = domain.MapView{
	Longitude: 139.691648,
	Latitude:  35.689185,
	Zoom:      4,
	Pitch:     40.5,
}

const (
	heatmapOpacity   = 0.4
	heatmapThreshold = 0.3

	bubbleSizeMax = 38

	// запас по оси x для столбчатой диаграммы
	industryRangeMargin = 50
	industryWidth       = 800
	industryHeight      = 500
)

var (
	bubbleRangeX = []float64{150, 700}
	bubbleRangeY = []float64{0, 150}
)

// heatmap: префектуры за год по всем возрастам + координаты, средняя
// зарплата нормализуется в вес точки.
func (s *Service) heatmap(sel domain.Selections) (*domain.HeatmapSection, error) {
	filtered := table.Filter(s.ds.Prefecture, table.Predicate{
		domain.ColAge:  domain.AgeAll,
		domain.ColYear: yearValue(sel.MapYear),
	})

	joined, err := table.Join(filtered, s.ds.Coordinates, domain.ColPrefecture, table.JoinOptions{})
	if err != nil {
		return nil, fmt.Errorf("table.Join: %w", err)
	}

	normalized, err := table.Normalize(joined, domain.ColAverageWage, domain.ColRelativeWage)
	if err != nil {
		return nil, fmt.Errorf("table.Normalize: %w", err)
	}

	points := make([]domain.HeatmapPoint, 0, normalized.Len())
	geo, err := domain.GeoPoints(normalized)
	if err != nil {
		return nil, err
	}
	for i, g := range geo {
		wage, _, err := normalized.Float(i, domain.ColAverageWage)
		if err != nil {
			return nil, err
		}
		weight, _, err := normalized.Float(i, domain.ColRelativeWage)
		if err != nil {
			return nil, err
		}
		points = append(points, domain.HeatmapPoint{GeoPoint: g, AverageWage: wage, Weight: weight})
	}

	section := &domain.HeatmapSection{
		Header: fmt.Sprintf("■%d年：一人当たり平均賃金ヒートマップ", sel.MapYear),
		Year:   sel.MapYear,
		View:   defaultMapView,
		Layer: domain.HeatmapLayer{
			Type:        "HeatmapLayer",
			Opacity:     heatmapOpacity,
			Threshold:   heatmapThreshold,
			GetPosition: []string{domain.ColLon, domain.ColLat},
			GetWeight:   domain.ColRelativeWage,
		},
		Points: points,
		Data:   normalized.Records(),
	}
	if sel.ShowTable {
		section.Table = tableView(normalized)
	}

	return section, nil
}

// trend: средняя зарплата по стране и по выбранной префектуре по годам.
func (s *Service) trend(sel domain.Selections) (*domain.TrendSection, error) {
	national, err := table.Filter(s.ds.National, table.Predicate{domain.ColAge: domain.AgeAll}).
		Rename(map[string]string{domain.ColAverageWage: domain.ColNationalAverageWage})
	if err != nil {
		return nil, fmt.Errorf("rename national: %w", err)
	}

	pref := table.Filter(s.ds.Prefecture, table.Predicate{
		domain.ColAge:        domain.AgeAll,
		domain.ColPrefecture: sel.Prefecture,
	})

	joined, err := table.Join(national, pref, domain.ColYear, table.JoinOptions{})
	if err != nil {
		return nil, fmt.Errorf("table.Join: %w", err)
	}

	line, err := joined.Select(domain.ColYear, domain.ColNationalAverageWage, domain.ColAverageWage)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	nationalSeries, err := yearSeries(line, domain.ColNationalAverageWage)
	if err != nil {
		return nil, err
	}
	prefSeries, err := yearSeries(line, domain.ColAverageWage)
	if err != nil {
		return nil, err
	}

	return &domain.TrendSection{
		Header:     "■集計年別の一人当たり賃金（万円）の推移",
		Prefecture: sel.Prefecture,
		Chart: domain.ChartSpec{
			Type: "line",
			X:    domain.ColYear,
			Y:    []string{domain.ColNationalAverageWage, domain.ColAverageWage},
			Data: line.Records(),
		},
		NationalSeries:   nationalSeries,
		PrefectureSeries: prefSeries,
	}, nil
}

func yearSeries(t *table.Table, column string) (domain.YearData, error) {
	out := make(domain.YearData, t.Len())
	for i := 0; i < t.Len(); i++ {
		year, _, err := t.Float(i, domain.ColYear)
		if err != nil {
			return nil, err
		}
		v, ok, err := t.Float(i, column)
		if err != nil {
			return nil, err
		}
		if ok {
			out[domain.Year(year)] = v
		}
	}
	return out, nil
}

// bubble: все возрастные группы, кроме 年齢計, анимация по годам.
func (s *Service) bubble() (*domain.BubbleSection, error) {
	brackets := table.Exclude(s.ds.National, table.Predicate{domain.ColAge: domain.AgeAll})

	records, err := domain.WageRecords(brackets)
	if err != nil {
		return nil, err
	}

	return &domain.BubbleSection{
		Header: "■年齢階級別の全国一人当たり平均賃金（万円）",
		Chart: domain.ChartSpec{
			Type:           "scatter",
			X:              domain.ColAverageWage,
			Y:              []string{domain.ColBonus},
			Size:           domain.ColBaseSalary,
			SizeMax:        bubbleSizeMax,
			Color:          domain.ColAge,
			AnimationFrame: domain.ColYear,
			AnimationGroup: domain.ColAge,
			RangeX:         bubbleRangeX,
			RangeY:         bubbleRangeY,
			Data:           brackets.Records(),
		},
		Records: records,
	}, nil
}

// industry: зарплата выбранного вида по отраслям за год, кадры по возрасту.
func (s *Service) industry(sel domain.Selections) (*domain.IndustrySection, error) {
	wageType := domain.WageType(sel.WageType)
	rows := table.Filter(s.ds.Industry, table.Predicate{domain.ColYear: yearValue(sel.IndustryYear)})

	// без строк или без единого значения диапазон [0, 50]
	maxX := decimal.NewFromInt(industryRangeMargin)
	hi, err := rows.Max(string(wageType))
	switch {
	case err == nil:
		maxX = decimal.NewFromFloat(hi).Add(maxX)
	case !errors.Is(err, table.ErrNoValues):
		return nil, fmt.Errorf("max %s: %w", wageType, err)
	}

	records, err := domain.WageRecords(rows)
	if err != nil {
		return nil, err
	}

	return &domain.IndustrySection{
		Header:   "■産業別の賃金推移",
		Year:     sel.IndustryYear,
		WageType: wageType,
		Chart: domain.ChartSpec{
			Type:           "bar",
			X:              string(wageType),
			Y:              []string{domain.ColIndustry},
			Color:          domain.ColIndustry,
			AnimationFrame: domain.ColAge,
			RangeX:         []float64{0, maxX.InexactFloat64()},
			Orientation:    "h",
			Width:          industryWidth,
			Height:         industryHeight,
			Data:           rows.Records(),
		},
		Records: records,
	}, nil
}
