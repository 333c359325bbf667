package main

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/oikos-research/friction-cli/internal/export"
)

var exportUnlockPct float64

var exportUnlockCmd = &cobra.Command{
	Use:   "export-unlock",
	Short: "Export the friction table with a percentage of locked stock unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, _, _, err := loadDerived()
		if err != nil {
			return err
		}

		doc, err := export.Unlock(records, exportUnlockPct)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("friction_by_municipality_unlocked_%.1f.json", exportUnlockPct)
		path := filepath.Join(cfg.Data.OutputDir, name)
		if err := export.SaveJSON(path, doc); err != nil {
			return eris.Wrap(err, "save unlock json")
		}

		fmt.Printf("Unlocked JSON saved to: %s\n", path)
		return nil
	},
}

func init() {
	exportUnlockCmd.Flags().Float64Var(&exportUnlockPct, "unlock-pct", 0, "unlock percentage in [0,100] (required)")
	_ = exportUnlockCmd.MarkFlagRequired("unlock-pct")
	rootCmd.AddCommand(exportUnlockCmd)
}
