package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/oikos-research/friction-cli/internal/export"
	"github.com/oikos-research/friction-cli/internal/friction"
)

var compositionCmd = &cobra.Command{
	Use:   "composition",
	Short: "Break down vacancy composition by archetype",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, _, _, err := loadDerived()
		if err != nil {
			return err
		}

		printCompositionSummary(os.Stdout, friction.SummarizeComposition(records))

		csvPath := filepath.Join(cfg.Data.OutputDir, "vacancy_composition.csv")
		if err := os.MkdirAll(cfg.Data.OutputDir, 0o755); err != nil {
			return eris.Wrap(err, "create output directory")
		}
		f, err := os.Create(csvPath)
		if err != nil {
			return eris.Wrap(err, "create composition csv")
		}
		if err := export.WriteCompositionCSV(f, records); err != nil {
			f.Close() //nolint:errcheck
			return err
		}
		if err := f.Close(); err != nil {
			return eris.Wrap(err, "close composition csv")
		}

		fmt.Printf("\nCSV saved to: %s\n", csvPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compositionCmd)
}
