package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/export"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute per-municipality friction from the census extract",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, malformed, degenerate, err := loadDerived()
		if err != nil {
			return err
		}
		zap.L().Info("census extract parsed",
			zap.Int("municipalities", len(records)),
			zap.Int("malformed_rows", malformed),
			zap.Int("degenerate_rows", degenerate),
		)

		doc, err := export.NewFrictionDocument(records)
		if err != nil {
			return err
		}

		printFrictionSummary(os.Stdout, doc)

		jsonPath := filepath.Join(cfg.Data.OutputDir, "friction_by_municipality.json")
		if err := export.SaveJSON(jsonPath, doc); err != nil {
			return eris.Wrap(err, "save friction json")
		}
		fmt.Printf("\nJSON saved to: %s\n", jsonPath)
		fmt.Printf("Total municipalities: %d\n", len(doc.Municipalities))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(computeCmd)
}
