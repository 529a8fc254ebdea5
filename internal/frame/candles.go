package frame

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/trendfilter/internal/domain"
	"github.com/vadiminshakov/trendfilter/pkg/indicators"
)

// Candle column names.
const (
	ColumnOpen   = "open"
	ColumnHigh   = "high"
	ColumnLow    = "low"
	ColumnClose  = "close"
	ColumnVolume = "volume"
)

// FromCandles builds a table with open, high, low, close and volume columns.
func FromCandles(candles []domain.MarketCandle) *Table {
	open := make([]indicators.Value, len(candles))
	high := make([]indicators.Value, len(candles))
	low := make([]indicators.Value, len(candles))
	closes := make([]indicators.Value, len(candles))
	volume := make([]indicators.Value, len(candles))

	for i, c := range candles {
		open[i] = decimalToValue(c.Open)
		high[i] = decimalToValue(c.High)
		low[i] = decimalToValue(c.Low)
		closes[i] = decimalToValue(c.Close)
		volume[i] = decimalToValue(c.Volume)
	}

	t := New(len(candles))
	for _, col := range []struct {
		name   string
		values []indicators.Value
	}{
		{ColumnOpen, open},
		{ColumnHigh, high},
		{ColumnLow, low},
		{ColumnClose, closes},
		{ColumnVolume, volume},
	} {
		// lengths always match here
		t = t.with(column{name: col.name, floats: col.values})
	}
	return t
}

func decimalToValue(d decimal.Decimal) indicators.Value {
	f, _ := d.Float64()
	return indicators.Defined(f)
}
