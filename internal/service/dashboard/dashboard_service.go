package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/pkg/table"
)

// Service пересчитывает панели дашборда из загруженных таблиц на каждый
// запрос. Состояния между запросами нет, кроме самих таблиц.
type Service struct {
	ds *domain.Dataset
}

func NewDashboardService(ds *domain.Dataset) *Service {
	return &Service{ds: ds}
}

// Render строит все четыре панели для выбранных фасетов. Вызов
// идемпотентен: одинаковый выбор дает одинаковый результат.
func (s *Service) Render(ctx context.Context, sel domain.Selections) (*domain.Dashboard, error) {
	start := time.Now()

	resolved, err := s.resolve(sel)
	if err != nil {
		return nil, err
	}

	heatmap, err := s.heatmap(resolved)
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}

	trend, err := s.trend(resolved)
	if err != nil {
		return nil, fmt.Errorf("trend: %w", err)
	}

	bubble, err := s.bubble()
	if err != nil {
		return nil, fmt.Errorf("bubble: %w", err)
	}

	industry, err := s.industry(resolved)
	if err != nil {
		return nil, fmt.Errorf("industry: %w", err)
	}

	logger.Debugf(ctx, "rendered dashboard for %+v in %s", resolved, time.Since(start))

	return &domain.Dashboard{
		Title:       domain.DashboardTitle,
		Selections:  resolved,
		Heatmap:     heatmap,
		Trend:       trend,
		Bubble:      bubble,
		Industry:    industry,
		Attribution: domain.Attribution,
	}, nil
}

// RenderChart строит одну панель.
func (s *Service) RenderChart(ctx context.Context, chart domain.Chart, sel domain.Selections) (interface{}, error) {
	resolved, err := s.resolve(sel)
	if err != nil {
		return nil, err
	}

	logger.Debugf(ctx, "rendering %s chart", chart)

	switch chart {
	case domain.ChartHeatmap:
		return s.heatmap(resolved)
	case domain.ChartTrend:
		return s.trend(resolved)
	case domain.ChartBubble:
		return s.bubble()
	case domain.ChartIndustry:
		return s.industry(resolved)
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownChart, chart)
	}
}

func (s *Service) Heatmap(ctx context.Context, sel domain.Selections) (*domain.HeatmapSection, error) {
	resolved, err := s.resolve(sel)
	if err != nil {
		return nil, err
	}
	return s.heatmap(resolved)
}

func (s *Service) Trend(ctx context.Context, sel domain.Selections) (*domain.TrendSection, error) {
	resolved, err := s.resolve(sel)
	if err != nil {
		return nil, err
	}
	return s.trend(resolved)
}

func (s *Service) Bubble(ctx context.Context) (*domain.BubbleSection, error) {
	logger.Debugf(ctx, "rendering %s chart", domain.ChartBubble)
	return s.bubble()
}

func (s *Service) Industry(ctx context.Context, sel domain.Selections) (*domain.IndustrySection, error) {
	resolved, err := s.resolve(sel)
	if err != nil {
		return nil, err
	}
	return s.industry(resolved)
}

// Facets отдает варианты для селекторов.
func (s *Service) Facets(ctx context.Context) (*domain.Facets, error) {
	mapYears, err := years(s.ds.Prefecture)
	if err != nil {
		return nil, fmt.Errorf("map years: %w", err)
	}

	prefectures, err := s.prefectures()
	if err != nil {
		return nil, err
	}

	industryYears, err := years(s.ds.Industry)
	if err != nil {
		return nil, fmt.Errorf("industry years: %w", err)
	}

	return &domain.Facets{
		MapYears:      mapYears,
		Prefectures:   prefectures,
		IndustryYears: industryYears,
		WageTypes:     domain.WageTypes,
	}, nil
}

// resolve подставляет значения по умолчанию и проверяет вид зарплаты.
// Неизвестные год или префектура ошибкой не считаются: панель будет пустой.
func (s *Service) resolve(sel domain.Selections) (domain.Selections, error) {
	wageType, ok := domain.ParseWageType(sel.WageType)
	if !ok {
		return sel, fmt.Errorf("%w: wage type %q", constants.ErrInvalidSelection, sel.WageType)
	}
	sel.WageType = string(wageType)

	if sel.MapYear == 0 {
		sel.MapYear = domain.DefaultMapYear
	}

	if sel.Prefecture == "" {
		prefectures, err := s.prefectures()
		if err != nil {
			return sel, err
		}
		if len(prefectures) > 0 {
			sel.Prefecture = prefectures[0]
		}
	}

	if sel.IndustryYear == 0 {
		industryYears, err := years(s.ds.Industry)
		if err != nil {
			return sel, fmt.Errorf("industry years: %w", err)
		}
		if len(industryYears) > 0 {
			sel.IndustryYear = industryYears[0]
		}
	}

	return sel, nil
}

func (s *Service) prefectures() ([]string, error) {
	all := table.Filter(s.ds.Prefecture, table.Predicate{domain.ColAge: domain.AgeAll})
	prefectures, err := all.Unique(domain.ColPrefecture)
	if err != nil {
		return nil, fmt.Errorf("prefectures: %w", err)
	}
	return prefectures, nil
}

func years(t *table.Table) ([]domain.Year, error) {
	values, err := t.Unique(domain.ColYear)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Year, 0, len(values))
	for _, v := range values {
		y, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", table.ErrNotNumeric, domain.ColYear, v)
		}
		out = append(out, y)
	}
	return out, nil
}

func yearValue(y domain.Year) string {
	return strconv.Itoa(y)
}

func tableView(t *table.Table) *domain.TableView {
	return &domain.TableView{Columns: t.Columns(), Rows: t.Rows()}
}
