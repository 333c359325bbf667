package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/oikos-research/friction-cli/internal/export"
	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/store"
)

var (
	simUnlockFraction float64
	simAlpha          float64
	simMinSigma       float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate the price effect of unlocking part of the locked stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		joined, err := latestJoined(ctx, st)
		if err != nil {
			return err
		}

		scenario := friction.Scenario{UnlockFraction: simUnlockFraction, Alpha: simAlpha}
		res, err := friction.Simulate(joined, scenario)
		if err != nil {
			return err
		}

		printSimulationSummary(os.Stdout, res, simMinSigma)

		run, err := st.CreateRun(ctx, store.RunSimulate, runParams(map[string]any{
			"unlock_fraction": simUnlockFraction,
			"alpha":           simAlpha,
		}))
		if err != nil {
			return err
		}
		if err := st.SaveSimulations(ctx, run.ID, res.Municipalities); err != nil {
			return eris.Wrap(err, "persist simulation table")
		}

		csvPath := filepath.Join(cfg.Data.OutputDir, "unlock_simulation_municipalities.csv")
		if err := os.MkdirAll(cfg.Data.OutputDir, 0o755); err != nil {
			return eris.Wrap(err, "create output directory")
		}
		f, err := os.Create(csvPath)
		if err != nil {
			return eris.Wrap(err, "create simulation csv")
		}
		if err := export.WriteSimulationCSV(f, res.Municipalities); err != nil {
			f.Close() //nolint:errcheck
			return err
		}
		if err := f.Close(); err != nil {
			return eris.Wrap(err, "close simulation csv")
		}

		fmt.Printf("\nSimulation written to: %s (run %s)\n", csvPath, run.ID)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simUnlockFraction, "unlock-fraction", 0.2, "fraction of locked stock unlocked, in [0,1]")
	simulateCmd.Flags().Float64Var(&simAlpha, "alpha", 1.4, "price elasticity, > 0")
	simulateCmd.Flags().Float64Var(&simMinSigma, "min-sigma", 0.25, "report averages only over municipalities with sigma >= this")
	rootCmd.AddCommand(simulateCmd)
}
