// Package pipeline runs the indicator math over a whole candle table and exposes the
// trend and volume trade filters built on top of it.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/trendfilter/internal/domain"
	"github.com/vadiminshakov/trendfilter/internal/frame"
	"github.com/vadiminshakov/trendfilter/pkg/indicators"
	"go.uber.org/zap"
)

const (
	// DefaultEMAPeriod EMA length of the trend filter.
	DefaultEMAPeriod = 200
	// DefaultVolumePeriod window of the rolling volume average.
	DefaultVolumePeriod = 20
	// DefaultSpikeFactor multiple of average volume a spike must exceed.
	DefaultSpikeFactor = 1.5

	// TrendColumn holds the per-row trend classification.
	TrendColumn = "trend_direction"
)

// EMAColumn returns the name of the EMA column for period.
func EMAColumn(period int) string {
	return fmt.Sprintf("ema_%d", period)
}

// VolumeAverageColumn returns the name of the volume average column for period.
func VolumeAverageColumn(period int) string {
	return fmt.Sprintf("volume_avg_%d", period)
}

type augmentOptions struct {
	emaPeriod    int
	volumePeriod int
}

// Option configures Augment.
type Option func(*augmentOptions)

// WithEMAPeriod sets the EMA period (default 200).
func WithEMAPeriod(period int) Option {
	return func(o *augmentOptions) {
		o.emaPeriod = period
	}
}

// WithVolumePeriod sets the volume average period (default 20).
func WithVolumePeriod(period int) Option {
	return func(o *augmentOptions) {
		o.volumePeriod = period
	}
}

// Calculator adds indicator columns to candle tables and evaluates trade filters.
// It keeps no state besides the logger and is safe for concurrent use.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new Calculator. A nil logger discards output.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Augment returns a copy of t with ema_<p>, volume_avg_<p> and trend_direction columns
// appended. t must have close and volume columns; it is never modified.
func (c *Calculator) Augment(t *frame.Table, opts ...Option) (*frame.Table, error) {
	o := augmentOptions{
		emaPeriod:    DefaultEMAPeriod,
		volumePeriod: DefaultVolumePeriod,
	}
	for _, opt := range opts {
		opt(&o)
	}

	closes, err := t.Numbers(frame.ColumnClose)
	if err != nil {
		return nil, errors.Wrap(err, "read close prices")
	}
	volumes, err := t.Numbers(frame.ColumnVolume)
	if err != nil {
		return nil, errors.Wrap(err, "read volumes")
	}

	ema, err := indicators.EMA(closes, o.emaPeriod)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to calculate EMA%d", o.emaPeriod)
	}

	volumeAvg, err := indicators.RollingAverage(volumes, o.volumePeriod)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to calculate volume average %d", o.volumePeriod)
	}

	// classify against the slice just computed, not a column read back from the table
	directions, err := indicators.TrendDirections(closes, ema)
	if err != nil {
		return nil, errors.Wrap(err, "failed to classify trend")
	}
	labels := make([]string, len(directions))
	for i, d := range directions {
		labels[i] = d.String()
	}

	out, err := t.WithFloat(EMAColumn(o.emaPeriod), ema)
	if err != nil {
		return nil, err
	}
	out, err = out.WithFloat(VolumeAverageColumn(o.volumePeriod), volumeAvg)
	if err != nil {
		return nil, err
	}
	out, err = out.WithLabels(TrendColumn, labels)
	if err != nil {
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("Added indicators: EMA-%d, Volume Average-%d", o.emaPeriod, o.volumePeriod),
		zap.Int("rows", out.Len()))

	return out, nil
}

// CheckTrendFilter reports whether entryPrice sits on the favourable side of the EMA for
// tradeSide ("long" or "short", any case). Unknown sides and an undefined EMA fail.
func (c *Calculator) CheckTrendFilter(entryPrice float64, emaValue indicators.Value, tradeSide string) bool {
	ema, ok := emaValue.Float64()
	if !ok {
		return false
	}

	switch strings.ToLower(tradeSide) {
	case string(domain.TradeSideLong):
		return entryPrice > ema
	case string(domain.TradeSideShort):
		return entryPrice < ema
	default:
		return false
	}
}

// CheckVolumeFilter reports whether currentVolume is a spike over avgVolume.
func (c *Calculator) CheckVolumeFilter(currentVolume float64, avgVolume indicators.Value, spikeFactor float64) bool {
	return indicators.DetectVolumeSpike(currentVolume, avgVolume, spikeFactor)
}
