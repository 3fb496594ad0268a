package domain

import (
	"testing"

	"github.com/ougirez/wagedash/internal/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWageType(t *testing.T) {
	tests := []struct {
		in     string
		want   WageType
		wantOK bool
	}{
		{in: "", want: WageAverage, wantOK: true},
		{in: "average", want: WageAverage, wantOK: true},
		{in: " bonus ", want: WageBonus, wantOK: true},
		{in: "base_salary", want: WageBaseSalary, wantOK: true},
		{in: ColBaseSalary, want: WageBaseSalary, wantOK: true},
		{in: "salary", wantOK: false},
		{in: ColAge, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseWageType(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWageRecords(t *testing.T) {
	tbl, err := table.New(
		[]string{ColYear, ColIndustry, ColAge, ColAverageWage, ColBaseSalary, ColBonus},
		[][]string{
			{"2019", "製造業", AgeAll, "512.3", "370", "110"},
			{"2019", "製造業", "20〜24歳", "270", "", "36"},
		},
	)
	require.NoError(t, err)

	records, err := WageRecords(tbl)
	require.NoError(t, err)
	assert.Equal(t, []WageRecord{
		{Year: 2019, Industry: "製造業", Age: AgeAll, AverageWage: 512.3, BaseSalary: 370, Bonus: 110},
		{Year: 2019, Industry: "製造業", Age: "20〜24歳", AverageWage: 270, Bonus: 36},
	}, records)

	assert.Equal(t, 110.0, records[0].Wage(WageBonus))
	assert.Equal(t, 370.0, records[0].Wage(WageBaseSalary))
	assert.Equal(t, 512.3, records[0].Wage(WageAverage))
}

func TestWageRecordsNotNumeric(t *testing.T) {
	tbl, err := table.New(
		[]string{ColYear, ColAge, ColAverageWage, ColBaseSalary, ColBonus},
		[][]string{{"2019", AgeAll, "n/a", "1", "1"}},
	)
	require.NoError(t, err)

	_, err = WageRecords(tbl)
	require.ErrorIs(t, err, table.ErrNotNumeric)
}

func TestGeoPoints(t *testing.T) {
	tbl, err := table.New(
		[]string{ColPrefecture, ColLat, ColLon},
		[][]string{{"東京都", "35.68944", "139.69167"}},
	)
	require.NoError(t, err)

	points, err := GeoPoints(tbl)
	require.NoError(t, err)
	assert.Equal(t, []GeoPoint{{Prefecture: "東京都", Lat: 35.68944, Lon: 139.69167}}, points)
}

func TestSchemaMissing(t *testing.T) {
	assert.Empty(t, CoordinatesSchema.Missing([]string{"id", ColPrefName, ColLat, ColLon}))
	assert.Equal(t, []string{ColLat, ColLon}, CoordinatesSchema.Missing([]string{ColPrefName}))
}
