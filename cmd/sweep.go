package main

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/oikos-research/friction-cli/internal/export"
	"github.com/oikos-research/friction-cli/internal/friction"
)

var (
	sweepFrom  float64
	sweepTo    float64
	sweepStep  float64
	sweepAlpha float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the unlock simulation across a range of percentages",
	Long:  "Produces one frame per unlock level for the external animation assembler.",
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

		results, err := friction.Sweep(joined, sweepFrom, sweepTo, sweepStep, sweepAlpha)
		if err != nil {
			return err
		}

		doc := export.NewSweepDocument(results)
		path := filepath.Join(cfg.Data.OutputDir, "unlock_sweep.json")
		if err := export.SaveJSON(path, doc); err != nil {
			return eris.Wrap(err, "save sweep json")
		}

		fmt.Printf("Sweep of %d frames saved to: %s\n", len(doc.Frames), path)
		return nil
	},
}

func init() {
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "starting unlock percentage")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 50, "final unlock percentage")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 10, "percentage step between frames")
	sweepCmd.Flags().Float64Var(&sweepAlpha, "alpha", 1.4, "price elasticity, > 0")
	rootCmd.AddCommand(sweepCmd)
}
