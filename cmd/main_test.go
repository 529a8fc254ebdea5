package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/trendfilter/config"
	"github.com/vadiminshakov/trendfilter/internal/domain"
	"github.com/vadiminshakov/trendfilter/internal/frame"
	"github.com/vadiminshakov/trendfilter/internal/services/market/pipeline"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.csv")
	csv := "close,volume\n100,100\n100,100\n100,100\n130,400\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	cfg := config.Config{
		CandlesFile: path,
		Side:        domain.TradeSideLong,
		Filter: pipeline.FilterConfig{
			EMAPeriod:          3,
			VolumePeriod:       3,
			SpikeFactor:        1.5,
			TrendFilterEnabled: true,
		},
	}

	decision, err := run(zap.NewNop(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, decision.Row)
	assert.True(t, decision.Passed())
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(zap.NewNop(), config.Config{CandlesFile: filepath.Join(dir, "missing.csv")})
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("close,volume\n"), 0o644))
	_, err = run(zap.NewNop(), config.Config{CandlesFile: empty, Filter: pipeline.DefaultFilterConfig()})
	assert.Error(t, err)

	noVolume := filepath.Join(dir, "novolume.csv")
	require.NoError(t, os.WriteFile(noVolume, []byte("close\n1\n2\n"), 0o644))
	_, err = run(zap.NewNop(), config.Config{CandlesFile: noVolume, Filter: pipeline.DefaultFilterConfig()})
	assert.ErrorIs(t, err, frame.ErrMissingColumn)
}
