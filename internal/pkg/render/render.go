// Package render рисует панели дашборда в PNG на сервере через gonum/plot.
package render

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"github.com/ougirez/wagedash/internal/domain"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var ErrNoData = errors.New("nothing to draw")

// в шрифтах gonum по умолчанию нет японских глифов
//
//go:embed fonts/mplus-1p-regular.ttf
var mplusTTF []byte

// japaneseFont подключается ко всем графикам пакета.
var japaneseFont = font.Font{Typeface: "M+ 1p"}

func init() {
	ttf, err := opentype.Parse(mplusTTF)
	if err != nil {
		panic(fmt.Sprintf("render: parse embedded font: %s", err))
	}

	font.DefaultCache.Add(font.Collection{{Font: japaneseFont, Face: ttf}})
	plot.DefaultFont = japaneseFont
	plotter.DefaultFont = japaneseFont
}

var (
	nationalColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	prefectureColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	barColor        = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	missingColor    = color.Gray{Y: 160}
)

const (
	trendWidth  = 8 * vg.Inch
	trendHeight = 4 * vg.Inch
	// 800x500 px при 96 dpi
	industryWidth  = 800 * vg.Inch / 96
	industryHeight = 500 * vg.Inch / 96

	heatmapWidth  = 7 * vg.Inch
	heatmapHeight = 7 * vg.Inch
	heatmapRadius = 6

	bubbleWidth  = 8 * vg.Inch
	bubbleHeight = 5 * vg.Inch
	// size_max 38 px задает диаметр самого крупного пузыря
	bubbleMaxRadius = 19
	bubbleMinRadius = 2
)

func sortedYears(series ...domain.YearData) []domain.Year {
	seen := make(map[domain.Year]struct{})
	for _, s := range series {
		for y := range s {
			seen[y] = struct{}{}
		}
	}
	out := make([]domain.Year, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

func xys(years []domain.Year, data domain.YearData) plotter.XYs {
	pts := make(plotter.XYs, 0, len(data))
	for _, y := range years {
		if v, ok := data[y]; ok {
			pts = append(pts, plotter.XY{X: float64(y), Y: v})
		}
	}
	return pts
}

// yearTicks ставит подписи только на целые годы.
func yearTicks(min, max float64) []plot.Tick {
	lo, hi := int(math.Ceil(min)), int(math.Floor(max))
	step := 1
	if n := hi - lo; n > 10 {
		step = (n + 9) / 10
	}

	ticks := make([]plot.Tick, 0, (hi-lo)/step+1)
	for y := lo; y <= hi; y += step {
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return ticks
}

func encode(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("plot.WriterTo: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write png: %w", err)
	}
	return buf.Bytes(), nil
}

// TrendPNG: линии по стране и по префектуре.
func TrendPNG(section *domain.TrendSection) ([]byte, error) {
	if len(section.NationalSeries) == 0 && len(section.PrefectureSeries) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = section.Header
	p.X.Label.Text = domain.ColYear
	p.X.Tick.Marker = plot.TickerFunc(yearTicks)
	p.Y.Label.Text = domain.ColAverageWage
	p.Add(plotter.NewGrid())

	years := sortedYears(section.NationalSeries, section.PrefectureSeries)
	lines := []struct {
		name  string
		data  domain.YearData
		color color.Color
	}{
		{domain.ColNationalAverageWage, section.NationalSeries, nationalColor},
		{section.Prefecture, section.PrefectureSeries, prefectureColor},
	}

	for _, l := range lines {
		if len(l.data) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys(years, l.data))
		if err != nil {
			return nil, fmt.Errorf("plotter.NewLinePoints: %w", err)
		}
		line.Color = l.color
		points.GlyphStyle.Color = l.color
		p.Add(line, points)
		p.Legend.Add(l.name, line, points)
	}
	p.Legend.Top = true

	return encode(p, trendWidth, trendHeight)
}

// IndustryPNG: горизонтальные столбцы по отраслям. Анимацию по возрасту
// в PNG не передать, поэтому рисуется кадр 年齢計 (или первый имеющийся).
func IndustryPNG(section *domain.IndustrySection) ([]byte, error) {
	if len(section.Records) == 0 {
		return nil, ErrNoData
	}

	frame := domain.AgeAll
	if !hasAge(section.Records, frame) {
		frame = section.Records[0].Age
	}

	values := make(plotter.Values, 0, len(section.Records))
	names := make([]string, 0, len(section.Records))
	for _, r := range section.Records {
		if r.Age != frame {
			continue
		}
		values = append(values, r.Wage(section.WageType))
		names = append(names, r.Industry)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%d, %s)", section.Header, section.Year, frame)
	p.X.Label.Text = string(section.WageType)
	if len(section.Chart.RangeX) == 2 {
		p.X.Min = section.Chart.RangeX[0]
		p.X.Max = section.Chart.RangeX[1]
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("plotter.NewBarChart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)

	return encode(p, industryWidth, industryHeight)
}

func hasAge(records []domain.WageRecord, age string) bool {
	for _, r := range records {
		if r.Age == age {
			return true
		}
	}
	return false
}

// HeatmapPNG: префектуры точками по координатам, цвет от синего к красному
// по относительной зарплате.
func HeatmapPNG(section *domain.HeatmapSection) ([]byte, error) {
	if len(section.Points) == 0 {
		return nil, ErrNoData
	}

	data := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(section.Points)),
		Labels: make([]string, len(section.Points)),
	}
	for i, pt := range section.Points {
		data.XYs[i] = plotter.XY{X: pt.Lon, Y: pt.Lat}
		data.Labels[i] = pt.Prefecture
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMax(1)
	colors.SetMin(0)

	scatter, err := plotter.NewScatter(data)
	if err != nil {
		return nil, fmt.Errorf("plotter.NewScatter: %w", err)
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := colors.At(section.Points[i].Weight)
		if err != nil {
			c = missingColor
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(heatmapRadius), Shape: draw.CircleGlyph{}}
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, fmt.Errorf("plotter.NewLabels: %w", err)
	}
	labels.Offset = vg.Point{X: vg.Points(heatmapRadius + 2)}

	p := plot.New()
	p.Title.Text = section.Header
	p.X.Label.Text = domain.ColLon
	p.Y.Label.Text = domain.ColLat
	p.Add(plotter.NewGrid(), scatter, labels)

	return encode(p, heatmapWidth, heatmapHeight)
}

// BubblePNG: возрастные группы за последний год. По x средняя зарплата,
// по y бонус, площадь пузыря по окладу.
func BubblePNG(section *domain.BubbleSection) ([]byte, error) {
	if len(section.Records) == 0 {
		return nil, ErrNoData
	}

	frame := section.Records[0].Year
	for _, r := range section.Records {
		if r.Year > frame {
			frame = r.Year
		}
	}

	var (
		ages    []string
		byAge   = make(map[string][]domain.WageRecord)
		maxSize float64
	)
	for _, r := range section.Records {
		if r.Year != frame {
			continue
		}
		if _, ok := byAge[r.Age]; !ok {
			ages = append(ages, r.Age)
		}
		byAge[r.Age] = append(byAge[r.Age], r)
		maxSize = math.Max(maxSize, r.BaseSalary)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%d)", section.Header, frame)
	p.X.Label.Text = domain.ColAverageWage
	p.Y.Label.Text = domain.ColBonus
	if len(section.Chart.RangeX) == 2 {
		p.X.Min, p.X.Max = section.Chart.RangeX[0], section.Chart.RangeX[1]
	}
	if len(section.Chart.RangeY) == 2 {
		p.Y.Min, p.Y.Max = section.Chart.RangeY[0], section.Chart.RangeY[1]
	}
	p.Add(plotter.NewGrid())

	for i, age := range ages {
		group := byAge[age]
		pts := make(plotter.XYs, len(group))
		for k, r := range group {
			pts[k] = plotter.XY{X: r.AverageWage, Y: r.Bonus}
		}

		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("plotter.NewScatter: %w", err)
		}
		c := plotutil.Color(i)
		scatter.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(bubbleMinRadius), Shape: draw.CircleGlyph{}}
		scatter.GlyphStyleFunc = func(k int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: c, Radius: bubbleRadius(group[k].BaseSalary, maxSize), Shape: draw.CircleGlyph{}}
		}

		p.Add(scatter)
		p.Legend.Add(age, scatter)
	}
	p.Legend.Top = true

	return encode(p, bubbleWidth, bubbleHeight)
}

// bubbleRadius масштабирует площадь, а не радиус.
func bubbleRadius(v, max float64) vg.Length {
	if max <= 0 || v <= 0 {
		return vg.Points(bubbleMinRadius)
	}
	r := bubbleMaxRadius * math.Sqrt(v/max)
	return vg.Points(math.Max(r, bubbleMinRadius))
}
