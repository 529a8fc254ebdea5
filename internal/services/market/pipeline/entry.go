package pipeline

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/trendfilter/internal/domain"
	"github.com/vadiminshakov/trendfilter/internal/frame"
	"github.com/vadiminshakov/trendfilter/pkg/indicators"
	"go.uber.org/zap"
)

// FilterConfig parameters of the entry filters.
type FilterConfig struct {
	EMAPeriod    int
	VolumePeriod int
	SpikeFactor  float64
	// TrendFilterEnabled turns the EMA side check on; when off it always passes.
	TrendFilterEnabled bool
}

// DefaultFilterConfig returns EMA-200, 20-period volume average, 1.5x spike, trend filter on.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		EMAPeriod:          DefaultEMAPeriod,
		VolumePeriod:       DefaultVolumePeriod,
		SpikeFactor:        DefaultSpikeFactor,
		TrendFilterEnabled: true,
	}
}

// EntryDecision filter outcome for one candle of an augmented table.
type EntryDecision struct {
	Row           int
	Side          string
	Close         float64
	Volume        float64
	EMA           indicators.Value
	VolumeAverage indicators.Value
	Trend         domain.TrendDirection
	TrendPassed   bool
	VolumePassed  bool
}

// Passed reports whether both filters passed.
func (d EntryDecision) Passed() bool {
	return d.TrendPassed && d.VolumePassed
}

// CheckEntry evaluates both filters at row of a table produced by Augment with the
// periods in cfg.
func (c *Calculator) CheckEntry(t *frame.Table, row int, side string, cfg FilterConfig) (EntryDecision, error) {
	closeValue, err := t.FloatAt(frame.ColumnClose, row)
	if err != nil {
		return EntryDecision{}, errors.Wrap(err, "read close price")
	}
	volumeValue, err := t.FloatAt(frame.ColumnVolume, row)
	if err != nil {
		return EntryDecision{}, errors.Wrap(err, "read volume")
	}
	ema, err := t.FloatAt(EMAColumn(cfg.EMAPeriod), row)
	if err != nil {
		return EntryDecision{}, errors.Wrap(err, "read ema")
	}
	volumeAvg, err := t.FloatAt(VolumeAverageColumn(cfg.VolumePeriod), row)
	if err != nil {
		return EntryDecision{}, errors.Wrap(err, "read volume average")
	}

	price := closeValue.OrNaN()
	volume := volumeValue.OrNaN()

	decision := EntryDecision{
		Row:           row,
		Side:          side,
		Close:         price,
		Volume:        volume,
		EMA:           ema,
		VolumeAverage: volumeAvg,
		Trend:         indicators.TrendDirectionOf(price, ema),
		TrendPassed:   true,
		VolumePassed:  c.CheckVolumeFilter(volume, volumeAvg, cfg.SpikeFactor),
	}
	if cfg.TrendFilterEnabled {
		decision.TrendPassed = c.CheckTrendFilter(price, ema, side)
	}

	c.logger.Debug("entry filters evaluated",
		zap.Int("row", row),
		zap.String("side", side),
		zap.String("trend", decision.Trend.String()),
		zap.Bool("trend_passed", decision.TrendPassed),
		zap.Bool("volume_passed", decision.VolumePassed),
	)

	return decision, nil
}
