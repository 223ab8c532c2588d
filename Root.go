package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/rlbasics/config"
)

// app holds the state shared by every command
type app struct {
	configPath string
	out        string
	seed       uint64
	logLevel   string
	pretty     bool

	bandit    banditFlags
	gridworld gridWorldFlags

	cfg config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{bandit: banditFlags{progress: true}}

	cmd := &cobra.Command{
		Use:   "rlbasics",
		Short: "Run the k-armed bandit and gridworld experiments",
		Long: "rlbasics compares ε-greedy exploration schedules on the " +
			"10-armed bandit testbed and solves the 4x4 gridworld with " +
			"iterative policy evaluation and policy iteration.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.runBandit(cmd); err != nil {
				return err
			}
			return a.runGridWorld(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.out, "out", "", "Directory to write outputs to")
	flags.Uint64Var(&a.seed, "seed", 0, "Seed for all random number "+
		"generation")
	flags.StringVar(&a.logLevel, "log-level", "info", "Log level")
	flags.BoolVar(&a.pretty, "pretty", false, "Human-readable log output")

	cmd.AddCommand(
		newBanditCommand(a),
		newGridWorldCommand(a),
		&cobra.Command{
			Use:   "all",
			Short: "Run every experiment",
			RunE:  cmd.RunE,
		},
	)
	return cmd
}

// setup configures logging and loads the configuration, applying any
// flag overrides
func (a *app) setup(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if a.pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	a.cfg = config.Default()
	if a.configPath != "" {
		if a.cfg, err = config.Load(a.configPath); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
		log.Debug().Str("path", a.configPath).Msg("loaded configuration")
	}

	if cmd.Flags().Changed("out") {
		a.cfg.Output.Dir = a.out
	}
	if cmd.Flags().Changed("seed") {
		a.cfg.Bandit.Seed = a.seed
		a.cfg.GridWorld.Seed = a.seed
	}

	if a.cfg.Output.Dir != "" {
		if err := os.MkdirAll(a.cfg.Output.Dir, 0o755); err != nil {
			return fmt.Errorf("setup: could not create output directory: %w",
				err)
		}
	}
	return nil
}
