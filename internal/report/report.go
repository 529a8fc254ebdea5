// Package report renders entry filter decisions for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/trendfilter/internal/domain"
	"github.com/vadiminshakov/trendfilter/internal/services/market/pipeline"
	"github.com/vadiminshakov/trendfilter/pkg/indicators"
)

var (
	passColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	failColor = lipgloss.AdaptiveColor{Light: "#E84855", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	passStyle  = lipgloss.NewStyle().Foreground(passColor).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(failColor).Bold(true)
)

// Render formats a decision as a bordered summary.
func Render(d pipeline.EntryDecision, cfg pipeline.FilterConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("Candle #%d, %s entry", d.Row, strings.ToUpper(d.Side))))
	fmt.Fprintf(&b, "Close:  %s\n", formatFloat(d.Close))
	fmt.Fprintf(&b, "EMA-%d: %s\n", cfg.EMAPeriod, formatValue(d.EMA))
	fmt.Fprintf(&b, "Trend:  %s\n", trendTitle(d.Trend))
	fmt.Fprintf(&b, "Volume: %s (avg-%d %s, x%s)\n",
		formatFloat(d.Volume), cfg.VolumePeriod, formatValue(d.VolumeAverage), formatFloat(cfg.SpikeFactor))

	trendLabel := verdict(d.TrendPassed)
	if !cfg.TrendFilterEnabled {
		trendLabel = "SKIPPED"
	}
	fmt.Fprintf(&b, "Trend filter:  %s\n", trendLabel)
	fmt.Fprintf(&b, "Volume filter: %s\n", verdict(d.VolumePassed))
	fmt.Fprintf(&b, "Entry:         %s", verdict(d.Passed()))

	return boxStyle.Render(b.String())
}

func verdict(ok bool) string {
	if ok {
		return passStyle.Render("PASS")
	}
	return failStyle.Render("FAIL")
}

func trendTitle(t domain.TrendDirection) string {
	if t == "" {
		return domain.TrendDirectionNeutral.Title()
	}
	return t.Title()
}

func formatValue(v indicators.Value) string {
	f, ok := v.Float64()
	if !ok {
		return "n/a"
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.4f", f)
}
