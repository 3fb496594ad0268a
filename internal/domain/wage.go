package domain

import (
	"fmt"

	"github.com/ougirez/wagedash/internal/pkg/table"
)

type Year = int
type YearData = map[Year]float64

// Столбцы таблиц RESAS.
const (
	ColYear        = "集計年"
	ColPrefCode    = "都道府県コード"
	ColPrefecture  = "都道府県名"
	ColIndustry    = "産業大分類名"
	ColAge         = "年齢"
	ColAverageWage = "一人当たり賃金（万円）"
	ColBaseSalary  = "所定内給与額（万円）"
	ColBonus       = "年間賞与その他特別給与額（万円）"

	ColNationalAverageWage = "全国_一人当たり賃金（万円）"
	ColRelativeWage        = "一人当たり賃金（相対値）"

	ColLat      = "lat"
	ColLon      = "lon"
	ColPrefName = "pref_name"
)

// AgeAll: значение столбца 年齢 для строки по всем возрастам.
const AgeAll = "年齢計"

// WageType: выбираемый вид зарплаты; значение совпадает с именем столбца.
type WageType string

const (
	WageAverage    WageType = ColAverageWage
	WageBaseSalary WageType = ColBaseSalary
	WageBonus      WageType = ColBonus
)

var WageTypes = []WageType{WageAverage, WageBaseSalary, WageBonus}

func (w WageType) Valid() bool {
	for _, t := range WageTypes {
		if w == t {
			return true
		}
	}
	return false
}

// WageRecord: строка таблицы зарплат. Prefecture и Industry пусты, если
// в исходной таблице нет таких столбцов.
type WageRecord struct {
	Year        Year    `json:"year"`
	Prefecture  string  `json:"prefecture,omitempty"`
	Industry    string  `json:"industry,omitempty"`
	Age         string  `json:"age"`
	AverageWage float64 `json:"average_wage"`
	BaseSalary  float64 `json:"base_salary"`
	Bonus       float64 `json:"bonus"`
}

func (r WageRecord) Wage(w WageType) float64 {
	switch w {
	case WageBaseSalary:
		return r.BaseSalary
	case WageBonus:
		return r.Bonus
	default:
		return r.AverageWage
	}
}

type GeoPoint struct {
	Prefecture string  `json:"prefecture"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

func optional(t *table.Table, row int, column string) (string, error) {
	if !t.Has(column) {
		return "", nil
	}
	return t.Value(row, column)
}

func number(t *table.Table, row int, column string) (float64, error) {
	v, _, err := t.Float(row, column)
	return v, err
}

// WageRecords переводит строки таблицы зарплат в типизированные записи.
// Пустые числовые ячейки дают 0.
func WageRecords(t *table.Table) ([]WageRecord, error) {
	out := make([]WageRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		var (
			r   WageRecord
			err error
		)

		year, err := number(t, i, ColYear)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		r.Year = Year(year)

		if r.Prefecture, err = optional(t, i, ColPrefecture); err != nil {
			return nil, err
		}
		if r.Industry, err = optional(t, i, ColIndustry); err != nil {
			return nil, err
		}
		if r.Age, err = t.Value(i, ColAge); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if r.AverageWage, err = number(t, i, ColAverageWage); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if r.BaseSalary, err = number(t, i, ColBaseSalary); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if r.Bonus, err = number(t, i, ColBonus); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		out = append(out, r)
	}
	return out, nil
}

// GeoPoints читает таблицу координат (после переименования pref_name).
func GeoPoints(t *table.Table) ([]GeoPoint, error) {
	out := make([]GeoPoint, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		pref, err := t.Value(i, ColPrefecture)
		if err != nil {
			return nil, err
		}
		lat, err := number(t, i, ColLat)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		lon, err := number(t, i, ColLon)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, GeoPoint{Prefecture: pref, Lat: lat, Lon: lon})
	}
	return out, nil
}
