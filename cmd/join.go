package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/census"
	"github.com/oikos-research/friction-cli/internal/geo"
	"github.com/oikos-research/friction-cli/internal/pipeline"
	"github.com/oikos-research/friction-cli/internal/resolve"
	"github.com/oikos-research/friction-cli/internal/store"
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Resolve census names against boundary polygons and persist the joined table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Raw records go in; Join derives and counts degenerate rows in
		// the coverage report itself.
		records, malformed, err := census.LoadExtract(cfg.Data.ExtractPath, census.ExtractOptions{
			SkipRows: cfg.Match.SkipRows,
			Level:    cfg.Match.Level,
		})
		if err != nil {
			return err
		}

		boundaries, err := geo.LoadBoundaries(cfg.Data.ShapefilePath, geo.Options{
			NameField: cfg.Match.NameField,
			Exclude:   cfg.Match.ExcludeName,
		})
		if err != nil {
			return err
		}

		in := pipeline.JoinInput{
			Municipalities: records,
			Boundaries:     boundaries,
			MalformedRows:  malformed,
		}

		if cfg.Data.OverridesPath != "" {
			overrides, err := resolve.LoadOverrides(cfg.Data.OverridesPath)
			if err != nil {
				return err
			}
			zap.L().Info("override table loaded",
				zap.String("path", cfg.Data.OverridesPath),
				zap.Int("entries", overrides.Len()),
			)
			in.Overrides = overrides
		}

		if cfg.Data.PopulationPath != "" {
			pop, err := census.LoadPopulation(cfg.Data.PopulationPath, cfg.Match.Level)
			if err != nil {
				zap.L().Warn("population dataset unavailable, per-capita metric skipped", zap.Error(err))
			} else {
				in.Population = pop
			}
		}

		joined, cov, err := pipeline.Join(in)
		if err != nil {
			return err
		}
		cov.Write(os.Stdout)

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		run, err := st.CreateRun(ctx, store.RunJoin, runParams(map[string]any{
			"extract":   cfg.Data.ExtractPath,
			"shapefile": cfg.Data.ShapefilePath,
		}))
		if err != nil {
			return err
		}
		if err := st.SaveJoined(ctx, run.ID, joined); err != nil {
			return eris.Wrap(err, "persist joined table")
		}

		fmt.Printf("\nJoined %d municipalities onto %d boundaries (run %s)\n",
			len(joined), cov.TotalBoundaries, run.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(joinCmd)
}
