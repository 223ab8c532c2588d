package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/rlbasics/experiment"
	"github.com/samuelfneumann/rlbasics/render"
)

// banditFlags override the bandit settings of the configuration
type banditFlags struct {
	runs     int
	steps    int
	html     string
	data     string
	progress bool
}

func newBanditCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bandit",
		Short: "Compare ε-greedy exploration on the k-armed bandit testbed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBandit(cmd)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&a.bandit.runs, "runs", 100, "Number of independent runs")
	flags.IntVar(&a.bandit.steps, "steps", 1000, "Number of steps per run")
	flags.StringVar(&a.bandit.html, "html", "", "Also write an interactive "+
		"HTML chart to this file")
	flags.StringVar(&a.bandit.data, "data", "", "Also save the averaged "+
		"curves to this file")
	flags.BoolVar(&a.bandit.progress, "progress", true, "Display a progress "+
		"bar")
	return cmd
}

// runBandit averages every configured ε-greedy agent over the testbed
// and plots the average reward curves
func (a *app) runBandit(cmd *cobra.Command) error {
	c := a.cfg.Bandit
	out := a.cfg.Output
	if cmd.Flags().Changed("runs") {
		c.Runs = a.bandit.runs
	}
	if cmd.Flags().Changed("steps") {
		c.Steps = a.bandit.steps
	}
	if cmd.Flags().Changed("html") {
		out.HTMLFile = a.bandit.html
	}
	if cmd.Flags().Changed("data") {
		out.DataFile = a.bandit.data
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("bandit: %w", err)
	}

	var opts []experiment.Option
	if a.bandit.progress {
		opts = append(opts, experiment.WithProgress(os.Stderr))
	}
	results, err := experiment.AverageAll(c.Agents(), c.Testbed(), opts...)
	if err != nil {
		return fmt.Errorf("bandit: %w", err)
	}

	plotPath := out.Path(out.RewardPlotFile)
	if plotPath != "" {
		if err := render.RewardCurves(plotPath, results); err != nil {
			return fmt.Errorf("bandit: %w", err)
		}
		log.Info().Str("path", plotPath).Msg("saved reward curves")
	}

	if htmlPath := out.Path(out.HTMLFile); htmlPath != "" {
		if err := writeHTML(htmlPath, results); err != nil {
			return fmt.Errorf("bandit: %w", err)
		}
		log.Info().Str("path", htmlPath).Msg("saved interactive chart")
	}

	if dataPath := out.Path(out.DataFile); dataPath != "" {
		if err := experiment.Save(dataPath, results); err != nil {
			return fmt.Errorf("bandit: %w", err)
		}
		log.Info().Str("path", dataPath).Msg("saved averaged curves")
	}
	return nil
}

func writeHTML(path string, results []experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writeHTML: %w", err)
	}
	defer f.Close()

	if err := render.RewardCurvesHTML(f, results); err != nil {
		return err
	}
	return f.Close()
}
