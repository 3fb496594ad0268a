package domain

import "strings"

const (
	DashboardTitle = "日本の賃金データダッシュボード"
	DefaultMapYear = 2019
)

var Attribution = []string{
	"出典:RESAS（地域経済分析システム）",
	"本結果はRESAS（地域経済分析システム）を加工して作成",
}

// Selections: выбор пользователя в фасетах. Нулевые значения означают
// значение по умолчанию, которое подставляет сервис.
type Selections struct {
	MapYear      Year   `query:"map_year" json:"map_year" validate:"omitempty,gte=1900,lte=2100"`
	Prefecture   string `query:"prefecture" json:"prefecture" validate:"omitempty,max=64"`
	IndustryYear Year   `query:"industry_year" json:"industry_year" validate:"omitempty,gte=1900,lte=2100"`
	WageType     string `query:"wage_type" json:"wage_type" validate:"omitempty,max=64"`
	ShowTable    bool   `query:"show_table" json:"show_table"`
}

var wageTypeAliases = map[string]WageType{
	"average":     WageAverage,
	"base_salary": WageBaseSalary,
	"bonus":       WageBonus,
}

// ParseWageType принимает имя столбца или короткий алиас. Пустая строка означает
// среднюю зарплату.
func ParseWageType(s string) (WageType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WageAverage, true
	}
	if w, ok := wageTypeAliases[s]; ok {
		return w, true
	}
	w := WageType(s)
	return w, w.Valid()
}

type Chart string

const (
	ChartHeatmap  Chart = "heatmap"
	ChartTrend    Chart = "trend"
	ChartBubble   Chart = "bubble"
	ChartIndustry Chart = "industry"
)

type Facets struct {
	MapYears      []Year     `json:"map_years"`
	Prefectures   []string   `json:"prefectures"`
	IndustryYears []Year     `json:"industry_years"`
	WageTypes     []WageType `json:"wage_types"`
}

type Dashboard struct {
	Title       string           `json:"title"`
	Selections  Selections       `json:"selections"`
	Heatmap     *HeatmapSection  `json:"heatmap"`
	Trend       *TrendSection    `json:"trend"`
	Bubble      *BubbleSection   `json:"bubble"`
	Industry    *IndustrySection `json:"industry"`
	Attribution []string         `json:"attribution"`
}

type TableView struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type MapView struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
}

type HeatmapLayer struct {
	Type        string   `json:"type"`
	Opacity     float64  `json:"opacity"`
	Threshold   float64  `json:"threshold"`
	GetPosition []string `json:"get_position"`
	GetWeight   string   `json:"get_weight"`
}

type HeatmapPoint struct {
	GeoPoint
	AverageWage float64 `json:"average_wage"`
	Weight      float64 `json:"weight"`
}

type HeatmapSection struct {
	Header string                   `json:"header"`
	Year   Year                     `json:"year"`
	View   MapView                  `json:"view"`
	Layer  HeatmapLayer             `json:"layer"`
	Points []HeatmapPoint           `json:"points"`
	Data   []map[string]interface{} `json:"data"`
	Table  *TableView               `json:"table,omitempty"`
}

// ChartSpec: декларативное описание графика для фронтенда.
type ChartSpec struct {
	Type           string                   `json:"type"`
	X              string                   `json:"x"`
	Y              []string                 `json:"y"`
	Size           string                   `json:"size,omitempty"`
	SizeMax        int                      `json:"size_max,omitempty"`
	Color          string                   `json:"color,omitempty"`
	AnimationFrame string                   `json:"animation_frame,omitempty"`
	AnimationGroup string                   `json:"animation_group,omitempty"`
	RangeX         []float64                `json:"range_x,omitempty"`
	RangeY         []float64                `json:"range_y,omitempty"`
	Orientation    string                   `json:"orientation,omitempty"`
	Width          int                      `json:"width,omitempty"`
	Height         int                      `json:"height,omitempty"`
	Data           []map[string]interface{} `json:"data"`
}

type TrendSection struct {
	Header     string    `json:"header"`
	Prefecture string    `json:"prefecture"`
	Chart      ChartSpec `json:"chart"`

	// ряды для PNG-рендера
	NationalSeries   YearData `json:"-"`
	PrefectureSeries YearData `json:"-"`
}

type BubbleSection struct {
	Header  string       `json:"header"`
	Chart   ChartSpec    `json:"chart"`
	Records []WageRecord `json:"-"`
}

type IndustrySection struct {
	Header   string       `json:"header"`
	Year     Year         `json:"year"`
	WageType WageType     `json:"wage_type"`
	Chart    ChartSpec    `json:"chart"`
	Records  []WageRecord `json:"-"`
}
