// Command trendfilter evaluates the EMA trend filter and the volume spike filter on the
// latest candle of a CSV file.
//
// Usage:
//
//	trendfilter --config config.yaml
//	trendfilter --candles btc.csv --side long --ema-period 200 --volume-period 20 --spike-factor 1.5
//	trendfilter --setup (interactive wizard)
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/trendfilter/config"
	"github.com/vadiminshakov/trendfilter/internal/frame"
	"github.com/vadiminshakov/trendfilter/internal/report"
	"github.com/vadiminshakov/trendfilter/internal/services/market/pipeline"
	"github.com/vadiminshakov/trendfilter/internal/setup"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	if cfg.Setup {
		path, err := setup.RunTUI()
		if err != nil {
			logger.Fatal("setup failed", zap.Error(err))
		}
		cfg, err = config.Parse([]string{"--config", path})
		if err != nil {
			logger.Fatal("failed to load generated configuration", zap.Error(err))
		}
	}

	decision, err := run(logger, cfg)
	if err != nil {
		logger.Fatal("failed to evaluate filters", zap.String("candles", cfg.CandlesFile), zap.Error(err))
	}

	fmt.Println(report.Render(decision, cfg.Filter))
}

func run(logger *zap.Logger, cfg config.Config) (pipeline.EntryDecision, error) {
	f, err := os.Open(cfg.CandlesFile)
	if err != nil {
		return pipeline.EntryDecision{}, errors.Wrap(err, "open candles")
	}
	defer f.Close()

	candles, err := frame.ReadCSV(f)
	if err != nil {
		return pipeline.EntryDecision{}, errors.Wrapf(err, "parse %s", cfg.CandlesFile)
	}
	if candles.Len() == 0 {
		return pipeline.EntryDecision{}, errors.Errorf("no candles in %s", cfg.CandlesFile)
	}

	calc := pipeline.NewCalculator(logger)
	augmented, err := calc.Augment(candles,
		pipeline.WithEMAPeriod(cfg.Filter.EMAPeriod),
		pipeline.WithVolumePeriod(cfg.Filter.VolumePeriod),
	)
	if err != nil {
		return pipeline.EntryDecision{}, err
	}

	return calc.CheckEntry(augmented, augmented.Len()-1, cfg.Side.String(), cfg.Filter)
}
