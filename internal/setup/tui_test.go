package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePeriod(t *testing.T) {
	assert.NoError(t, validatePeriod("200"))
	assert.NoError(t, validatePeriod("1"))
	assert.Error(t, validatePeriod("0"))
	assert.Error(t, validatePeriod("-5"))
	assert.Error(t, validatePeriod("2.5"))
}

func TestValidateSpikeFactor(t *testing.T) {
	assert.NoError(t, validateSpikeFactor("1.5"))
	assert.Error(t, validateSpikeFactor("0"))
	assert.Error(t, validateSpikeFactor("abc"))
}

func TestValidateCandlesPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "candles.csv")
	require.NoError(t, os.WriteFile(file, []byte("close,volume\n"), 0o644))

	assert.NoError(t, validateCandlesPath(file))
	assert.Error(t, validateCandlesPath(""))
	assert.Error(t, validateCandlesPath(dir))
	assert.Error(t, validateCandlesPath(filepath.Join(dir, "missing.csv")))
}
