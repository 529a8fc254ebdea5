// Package setup provides the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/trendfilter/config"
	"github.com/vadiminshakov/trendfilter/internal/domain"
	"github.com/vadiminshakov/trendfilter/internal/services/market/pipeline"
	"gopkg.in/yaml.v3"
)

// ConfigFile name of the file written by the wizard.
const ConfigFile = "config.gen.yaml"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes ConfigFile.
// It returns the path of the written file.
func RunTUI() (string, error) {
	var (
		candles         string
		side            string
		emaPeriodStr    = strconv.Itoa(pipeline.DefaultEMAPeriod)
		volumePeriodStr = strconv.Itoa(pipeline.DefaultVolumePeriod)
		spikeFactorStr  = strconv.FormatFloat(pipeline.DefaultSpikeFactor, 'f', -1, 64)
		trendFilter     = true
		confirm         bool
	)

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("TRENDFILTER CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Tune the EMA trend gate and the volume spike gate.\n"))

	fmt.Println(stepStyle.Render("STEP 1: DATA"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Candles CSV").
				Description("Header row must name close and volume columns").
				Value(&candles).
				Validate(validateCandlesPath),
			huh.NewSelect[string]().
				Title("Trade side").
				Options(
					huh.NewOption("Long", string(domain.TradeSideLong)),
					huh.NewOption("Short", string(domain.TradeSideShort)),
				).
				Value(&side),
		),
	).Run()
	if err != nil {
		return "", err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("TRENDFILTER CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: FILTERS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("EMA period").
				Description("Trend filter EMA length (e.g. 200)").
				Value(&emaPeriodStr).
				Validate(validatePeriod),
			huh.NewInput().
				Title("Volume average period").
				Description("Rolling window for average volume (e.g. 20)").
				Value(&volumePeriodStr).
				Validate(validatePeriod),
			huh.NewInput().
				Title("Volume spike factor").
				Description("Volume must exceed average times this factor (e.g. 1.5)").
				Value(&spikeFactorStr).
				Validate(validateSpikeFactor),
			huh.NewConfirm().
				Title("Enable EMA trend filter?").
				Value(&trendFilter),
		),
	).Run()
	if err != nil {
		return "", err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("TRENDFILTER CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Candles: %s\nSide: %s\nEMA: %s\nVolume average: %s\nSpike factor: %s\nTrend filter: %t\n",
		candles, side, emaPeriodStr, volumePeriodStr, spikeFactorStr, trendFilter,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and run").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return "", err
	}

	if !confirm {
		return "", fmt.Errorf("setup cancelled by user")
	}

	data, err := yaml.Marshal(config.ConfigTmp{
		Candles:         candles,
		Side:            side,
		EMAPeriodStr:    emaPeriodStr,
		VolumePeriodStr: volumePeriodStr,
		SpikeFactorStr:  spikeFactorStr,
		TrendFilterStr:  strconv.FormatBool(trendFilter),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate yaml: %w", err)
	}

	if err := os.WriteFile(ConfigFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\nConfiguration saved to %s", ConfigFile)))
	return ConfigFile, nil
}

func validateCandlesPath(s string) error {
	if s == "" {
		return fmt.Errorf("path cannot be empty")
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot open %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

func validatePeriod(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func validateSpikeFactor(s string) error {
	_, err := config.ParseSpikeFactor(s)
	return err
}
