package domain

import "github.com/ougirez/wagedash/internal/pkg/table"

// Schema описывает исходную таблицу: обязательные столбцы заголовка и
// переименования, которые применяются сразу после загрузки.
type Schema struct {
	Name     string
	Required []string
	Rename   map[string]string
	// OrderBy используется источником postgres, чтобы сохранить порядок строк.
	OrderBy []string
}

var (
	NationalSchema = Schema{
		Name:     "national_wages",
		Required: []string{ColYear, ColAge, ColAverageWage, ColBaseSalary, ColBonus},
		OrderBy:  []string{"id"},
	}
	IndustrySchema = Schema{
		Name:     "industry_wages",
		Required: []string{ColYear, ColIndustry, ColAge, ColAverageWage, ColBaseSalary, ColBonus},
		OrderBy:  []string{"id"},
	}
	PrefectureSchema = Schema{
		Name:     "prefecture_wages",
		Required: []string{ColYear, ColPrefecture, ColAge, ColAverageWage, ColBaseSalary, ColBonus},
		OrderBy:  []string{"id"},
	}
	CoordinatesSchema = Schema{
		Name:     "pref_lat_lon",
		Required: []string{ColPrefName, ColLat, ColLon},
		Rename:   map[string]string{ColPrefName: ColPrefecture},
		OrderBy:  []string{"id"},
	}
)

// Dataset: все исходные таблицы. Загружается один раз и только читается.
type Dataset struct {
	National    *table.Table
	Industry    *table.Table
	Prefecture  *table.Table
	Coordinates *table.Table
}

// Missing возвращает обязательные столбцы, которых нет в заголовке.
func (s Schema) Missing(header []string) []string {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}

	missing := make([]string, 0)
	for _, c := range s.Required {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
