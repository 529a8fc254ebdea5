package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/trendfilter/internal/domain"
	"github.com/vadiminshakov/trendfilter/internal/services/market/pipeline"
	"gopkg.in/yaml.v3"
)

// Config run parameters for the filter CLI.
type Config struct {
	// CandlesFile path to a CSV with at least close and volume columns.
	CandlesFile string
	Side        domain.TradeSide
	Filter      pipeline.FilterConfig
	// Setup launches the interactive wizard instead of evaluating.
	Setup bool
}

// ConfigTmp yaml representation of Config.
type ConfigTmp struct {
	Candles         string `yaml:"candles"`
	Side            string `yaml:"side"`
	EMAPeriodStr    string `yaml:"ema_period,omitempty"`
	VolumePeriodStr string `yaml:"volume_period,omitempty"`
	SpikeFactorStr  string `yaml:"spike_factor,omitempty"`
	TrendFilterStr  string `yaml:"trend_filter,omitempty"`
}

// Get reads the configuration from os.Args.
func Get() (Config, error) {
	return Parse(os.Args[1:])
}

// Parse reads the configuration from args. With --config the yaml file wins over
// every other flag.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("trendfilter", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to yaml config")
	setup := fs.Bool("setup", false, "run interactive configuration wizard")
	candles := fs.String("candles", "", "path to candles csv, must contain close and volume columns")
	side := fs.String("side", "long", "trade side: long or short")
	emaPeriod := fs.String("ema-period", strconv.Itoa(pipeline.DefaultEMAPeriod), "EMA period for the trend filter")
	volumePeriod := fs.String("volume-period", strconv.Itoa(pipeline.DefaultVolumePeriod), "period of the volume average")
	spikeFactor := fs.String("spike-factor", strconv.FormatFloat(pipeline.DefaultSpikeFactor, 'f', -1, 64), "volume spike factor, example: 1.5")
	trendFilter := fs.String("trend-filter", "true", "enable EMA trend filter")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *setup {
		return Config{Setup: true}, nil
	}

	if *configPath != "" {
		return getYaml(*configPath)
	}

	return fromTmp(ConfigTmp{
		Candles:         *candles,
		Side:            *side,
		EMAPeriodStr:    *emaPeriod,
		VolumePeriodStr: *volumePeriod,
		SpikeFactorStr:  *spikeFactor,
		TrendFilterStr:  *trendFilter,
	})
}

func getYaml(path string) (Config, error) {
	var tmp ConfigTmp

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, fmt.Errorf("failed to parse yaml config %s: %w", path, err)
	}

	return fromTmp(tmp)
}

func fromTmp(c ConfigTmp) (Config, error) {
	if c.Candles == "" {
		return Config{}, fmt.Errorf("'candles' param is required")
	}

	side, ok := domain.ParseTradeSide(c.Side)
	if !ok {
		return Config{}, fmt.Errorf("incorrect 'side' param: %q (must be long or short)", c.Side)
	}

	newConfig := Config{
		CandlesFile: c.Candles,
		Side:        side,
		Filter:      pipeline.DefaultFilterConfig(),
	}

	if c.EMAPeriodStr != "" {
		period, err := parsePeriod(c.EMAPeriodStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'ema_period' param, error: %w", err)
		}
		newConfig.Filter.EMAPeriod = period
	}

	if c.VolumePeriodStr != "" {
		period, err := parsePeriod(c.VolumePeriodStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'volume_period' param, error: %w", err)
		}
		newConfig.Filter.VolumePeriod = period
	}

	if c.SpikeFactorStr != "" {
		factor, err := ParseSpikeFactor(c.SpikeFactorStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'spike_factor' param, error: %w", err)
		}
		newConfig.Filter.SpikeFactor = factor
	}

	if c.TrendFilterStr != "" {
		enabled, err := strconv.ParseBool(c.TrendFilterStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'trend_filter' param (must be true or false), error: %w", err)
		}
		newConfig.Filter.TrendFilterEnabled = enabled
	}

	return newConfig, nil
}

// parsePeriod parses a positive integer period.
func parsePeriod(s string) (int, error) {
	period, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("must be an integer: %w", err)
	}
	if period < 1 {
		return 0, fmt.Errorf("must be positive, got %d", period)
	}
	return period, nil
}

// ParseSpikeFactor parses a positive spike factor.
func ParseSpikeFactor(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("must be a decimal: %w", err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("must be positive, got %s", d.String())
	}
	f, _ := d.Float64()
	return f, nil
}
