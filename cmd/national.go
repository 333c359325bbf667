package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oikos-research/friction-cli/internal/census"
)

var nationalCmd = &cobra.Command{
	Use:   "national",
	Short: "Compute national sigma and F from the A05 workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := census.LoadNationalWorkbook(cfg.Data.WorkbookPath)
		if err != nil {
			return err
		}

		fmt.Println("NATIONAL LOCKED-STOCK FRICTION")
		fmt.Printf("Total dwellings:   %.0f\n", n.STotal)
		fmt.Printf("Empty dwellings:   %.0f\n", n.SEmpty)
		fmt.Printf("Locked share σ:    %.4f\n", n.Sigma)
		fmt.Printf("Friction F:        %.4f\n", n.F)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nationalCmd)
}
