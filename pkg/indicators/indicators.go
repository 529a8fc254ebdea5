// Package indicators provides technical analysis primitives (EMA, SMA, volume spikes,
// trend direction) over plain float64 series.
//
// Readings without enough history are reported as Undefined rather than zero, so
// comparisons against them fall through to false or neutral.
package indicators

import (
	"math"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/trendfilter/internal/domain"
)

// ErrInvalidPeriod is returned for periods below 1.
var ErrInvalidPeriod = errors.New("period must be a positive integer")

// EMA calculates the Exponential Moving Average with smoothing factor 2/(period+1).
// The recursion is seeded with the first value, so every index is defined.
// NaN inputs are skipped: the previous reading is carried over the gap, and rows
// before the first number stay undefined.
func EMA(series []float64, period int) ([]Value, error) {
	if period < 1 {
		return nil, errors.Wrapf(ErrInvalidPeriod, "ema period %d", period)
	}

	result := make([]Value, len(series))
	alpha := 2.0 / float64(period+1)

	var (
		prev   float64
		seeded bool
	)
	for i, v := range series {
		switch {
		case math.IsNaN(v):
		case !seeded:
			prev = v
			seeded = true
		default:
			prev = alpha*v + (1-alpha)*prev
		}
		if seeded {
			result[i] = Defined(prev)
		}
	}

	return result, nil
}

// SMA calculates the Simple Moving Average over a trailing window.
// The first period-1 entries are undefined, as is every window that contains a NaN.
func SMA(series []float64, period int) ([]Value, error) {
	if period < 1 {
		return nil, errors.Wrapf(ErrInvalidPeriod, "sma period %d", period)
	}

	result := make([]Value, len(series))

	// run the average over each gap-free stretch separately
	start := 0
	for start < len(series) {
		if math.IsNaN(series[start]) {
			start++
			continue
		}
		end := start
		for end < len(series) && !math.IsNaN(series[end]) {
			end++
		}
		if err := smaRun(series[start:end], period, result[start:end]); err != nil {
			return nil, err
		}
		start = end
	}

	return result, nil
}

// smaRun writes the averages of a NaN-free run into dst, which has the run's length.
func smaRun(run []float64, period int, dst []Value) error {
	if len(run) < period {
		return nil
	}

	sma := trend.NewSmaWithPeriod[float64](period)
	inputChan := helper.SliceToChan(run)
	outputChan := sma.Compute(inputChan)
	smaFloat := helper.ChanToSlice(outputChan)

	// sma skips its warmup window; align the tail onto the input index
	offset := len(run) - len(smaFloat)
	if offset < 0 {
		return errors.Errorf("sma produced %d values for %d inputs", len(smaFloat), len(run))
	}
	for i, v := range smaFloat {
		dst[offset+i] = Defined(v)
	}
	return nil
}

// RollingAverage calculates the trailing mean of a volume series.
// It shares the SMA contract.
func RollingAverage(volumes []float64, period int) ([]Value, error) {
	avg, err := SMA(volumes, period)
	if err != nil {
		return nil, errors.Wrap(err, "rolling average")
	}
	return avg, nil
}

// DetectVolumeSpike reports whether currentVolume exceeds avgVolume*spikeFactor.
// An undefined or zero average never produces a spike.
func DetectVolumeSpike(currentVolume float64, avgVolume Value, spikeFactor float64) bool {
	avg, ok := avgVolume.Float64()
	if !ok || avg == 0 {
		return false
	}
	return currentVolume > avg*spikeFactor
}

// TrendDirectionOf classifies price against its EMA.
func TrendDirectionOf(price float64, emaValue Value) domain.TrendDirection {
	ema, ok := emaValue.Float64()
	if !ok {
		return domain.TrendDirectionNeutral
	}

	switch {
	case price > ema:
		return domain.TrendDirectionBullish
	case price < ema:
		return domain.TrendDirectionBearish
	default:
		return domain.TrendDirectionNeutral
	}
}

// TrendDirections classifies prices element-wise against the matching EMA readings.
func TrendDirections(prices []float64, emaValues []Value) ([]domain.TrendDirection, error) {
	if len(prices) != len(emaValues) {
		return nil, errors.Errorf("length mismatch: %d prices, %d ema values", len(prices), len(emaValues))
	}

	result := make([]domain.TrendDirection, len(prices))
	for i, price := range prices {
		result[i] = TrendDirectionOf(price, emaValues[i])
	}
	return result, nil
}
