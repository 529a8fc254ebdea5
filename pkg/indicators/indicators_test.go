package indicators

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/trendfilter/internal/domain"
)

const tolerance = 1e-9

func mustFloat(t *testing.T, v Value) float64 {
	t.Helper()
	f, ok := v.Float64()
	require.True(t, ok, "expected defined value")
	return f
}

func TestEMA(t *testing.T) {
	series := []float64{10, 11, 12, 11, 13, 15, 14, 16, 18, 17}

	for _, period := range []int{1, 2, 3, 5, 20} {
		ema, err := EMA(series, period)
		require.NoError(t, err)
		require.Len(t, ema, len(series))

		alpha := 2.0 / float64(period+1)
		assert.Equal(t, series[0], mustFloat(t, ema[0]))
		for i := 1; i < len(series); i++ {
			expected := alpha*series[i] + (1-alpha)*mustFloat(t, ema[i-1])
			assert.InDelta(t, expected, mustFloat(t, ema[i]), tolerance, "period %d index %d", period, i)
		}
	}
}

func TestEMA_PeriodOneTracksSeries(t *testing.T) {
	series := []float64{3, 1, 4, 1, 5}
	ema, err := EMA(series, 1)
	require.NoError(t, err)
	for i, s := range series {
		assert.InDelta(t, s, mustFloat(t, ema[i]), tolerance)
	}
}

func TestEMA_KnownValues(t *testing.T) {
	// alpha = 0.5
	ema, err := EMA([]float64{2, 4, 6}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mustFloat(t, ema[0]), tolerance)
	assert.InDelta(t, 3.0, mustFloat(t, ema[1]), tolerance)
	assert.InDelta(t, 4.5, mustFloat(t, ema[2]), tolerance)
}

func TestSMA(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	for _, period := range []int{1, 2, 3, 4, 10} {
		t.Run(fmt.Sprintf("period %d", period), func(t *testing.T) {
			sma, err := SMA(series, period)
			require.NoError(t, err)
			require.Len(t, sma, len(series))

			for i := 0; i < period-1; i++ {
				assert.False(t, sma[i].IsDefined(), "period %d index %d", period, i)
			}
			for i := period - 1; i < len(series); i++ {
				sum := 0.0
				for j := i - period + 1; j <= i; j++ {
					sum += series[j]
				}
				assert.InDelta(t, sum/float64(period), mustFloat(t, sma[i]), tolerance, "period %d index %d", period, i)
			}
		})
	}
}

func TestSMA_ShortSeries(t *testing.T) {
	sma, err := SMA([]float64{1, 2}, 5)
	require.NoError(t, err)
	require.Len(t, sma, 2)
	assert.False(t, sma[0].IsDefined())
	assert.False(t, sma[1].IsDefined())

	empty, err := SMA(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEMA_SkipsGaps(t *testing.T) {
	nan := math.NaN()
	ema, err := EMA([]float64{nan, 2, nan, 6}, 3)
	require.NoError(t, err)

	assert.False(t, ema[0].IsDefined())
	assert.InDelta(t, 2.0, mustFloat(t, ema[1]), tolerance)
	assert.InDelta(t, 2.0, mustFloat(t, ema[2]), tolerance)
	// alpha = 0.5
	assert.InDelta(t, 4.0, mustFloat(t, ema[3]), tolerance)
}

func TestSMA_GapOnlyBlanksItsWindows(t *testing.T) {
	nan := math.NaN()
	series := []float64{1, 2, nan, 4, 5, 6, 7}

	sma, err := SMA(series, 3)
	require.NoError(t, err)
	require.Len(t, sma, len(series))

	for i := 0; i <= 4; i++ {
		assert.False(t, sma[i].IsDefined(), "index %d", i)
	}
	assert.InDelta(t, 5.0, mustFloat(t, sma[5]), tolerance)
	assert.InDelta(t, 6.0, mustFloat(t, sma[6]), tolerance)
}

func TestSMA_GapShorterRunsStayUndefined(t *testing.T) {
	nan := math.NaN()
	sma, err := SMA([]float64{1, nan, 2, nan, 3}, 2)
	require.NoError(t, err)
	for i, v := range sma {
		assert.False(t, v.IsDefined(), "index %d", i)
	}
}

func TestInvalidPeriod(t *testing.T) {
	_, err := EMA([]float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = SMA([]float64{1}, -1)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = RollingAverage([]float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestRollingAverage(t *testing.T) {
	volumes := []float64{100, 200, 300, 400}
	avg, err := RollingAverage(volumes, 2)
	require.NoError(t, err)

	assert.False(t, avg[0].IsDefined())
	assert.InDelta(t, 150.0, mustFloat(t, avg[1]), tolerance)
	assert.InDelta(t, 250.0, mustFloat(t, avg[2]), tolerance)
	assert.InDelta(t, 350.0, mustFloat(t, avg[3]), tolerance)
}

func TestDetectVolumeSpike(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		avg      Value
		factor   float64
		expected bool
	}{
		{name: "undefined average", current: 1000, avg: Undefined(), factor: 1.5, expected: false},
		{name: "zero average", current: 1000, avg: Defined(0), factor: 1.5, expected: false},
		{name: "exact boundary", current: 150, avg: Defined(100), factor: 1.5, expected: false},
		{name: "just above boundary", current: 151, avg: Defined(100), factor: 1.5, expected: true},
		{name: "below average", current: 50, avg: Defined(100), factor: 1.0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectVolumeSpike(tt.current, tt.avg, tt.factor))
		})
	}
}

func TestTrendDirectionOf(t *testing.T) {
	assert.Equal(t, domain.TrendDirectionBullish, TrendDirectionOf(105, Defined(100)))
	assert.Equal(t, domain.TrendDirectionBearish, TrendDirectionOf(95, Defined(100)))
	assert.Equal(t, domain.TrendDirectionNeutral, TrendDirectionOf(100, Defined(100)))
	assert.Equal(t, domain.TrendDirectionNeutral, TrendDirectionOf(100, Undefined()))
	assert.Equal(t, domain.TrendDirectionNeutral, TrendDirectionOf(-5, Undefined()))
}

func TestTrendDirections(t *testing.T) {
	dirs, err := TrendDirections([]float64{1, 2, 3}, []Value{Defined(2), Defined(2), Undefined()})
	require.NoError(t, err)
	assert.Equal(t, []domain.TrendDirection{
		domain.TrendDirectionBearish,
		domain.TrendDirectionNeutral,
		domain.TrendDirectionNeutral,
	}, dirs)

	_, err = TrendDirections([]float64{1}, nil)
	assert.Error(t, err)
}
