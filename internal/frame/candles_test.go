package frame

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/trendfilter/internal/domain"
	"github.com/vadiminshakov/trendfilter/pkg/indicators"
)

func TestFromCandles(t *testing.T) {
	candles := []domain.MarketCandle{
		{
			Open:   decimal.NewFromInt(10),
			High:   decimal.NewFromInt(12),
			Low:    decimal.NewFromInt(9),
			Close:  decimal.RequireFromString("11.5"),
			Volume: decimal.NewFromInt(1000),
		},
		{
			Open:   decimal.RequireFromString("11.5"),
			High:   decimal.NewFromInt(13),
			Low:    decimal.NewFromInt(11),
			Close:  decimal.NewFromInt(12),
			Volume: decimal.NewFromInt(1500),
		},
	}

	tbl := FromCandles(candles)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}, tbl.Columns())

	closes, err := tbl.Numbers(ColumnClose)
	require.NoError(t, err)
	assert.Equal(t, []float64{11.5, 12}, closes)

	volumes, err := tbl.Numbers(ColumnVolume)
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 1500}, volumes)
}

func TestReadCSV(t *testing.T) {
	input := `open_time,close,volume
2024-01-01T00:00:00Z,100.5,1000
2024-01-01T01:00:00Z,101,
2024-01-01T02:00:00Z,99.25,1200
`
	tbl, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"open_time", "close", "volume"}, tbl.Columns())

	times, err := tbl.Labels("open_time")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T01:00:00Z", times[1])

	closes, err := tbl.Numbers("close")
	require.NoError(t, err)
	assert.Equal(t, []float64{100.5, 101, 99.25}, closes)

	volumes, err := tbl.Float("volume")
	require.NoError(t, err)
	assert.Equal(t, indicators.Defined(1000), volumes[0])
	assert.False(t, volumes[1].IsDefined())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("close,close\n1,2\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("close,volume\n1,2\n3\n"))
	assert.Error(t, err)
}
