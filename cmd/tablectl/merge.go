package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	mergeR1, mergeC1, mergeR2, mergeC2 int
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the rectangle spanning (--r1,--c1)-(--r2,--c2)",
	Long: `Merges every cell in the inclusive rectangle into a single leading
cell, concatenating their values.

Example:

	tablectl merge --file table.json --r1 0 --c1 0 --r2 1 --c2 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := openTable(docFile)
		if err != nil {
			return err
		}
		defer table.Close()

		rect, err := table.Merge(mergeR1, mergeC1, mergeR2, mergeC2)
		if err != nil {
			return fmt.Errorf("tablectl: merge failed: %w", err)
		}
		if err := persist(docFile, table); err != nil {
			return err
		}
		fmt.Printf("merged to leading cell (%d,%d) span %dx%d\n", rect.R, rect.C, rect.RowSpan, rect.ColSpan)
		return nil
	},
}

func init() {
	mergeCmd.Flags().IntVar(&mergeR1, "r1", 0, "top row")
	mergeCmd.Flags().IntVar(&mergeC1, "c1", 0, "left column")
	mergeCmd.Flags().IntVar(&mergeR2, "r2", 0, "bottom row")
	mergeCmd.Flags().IntVar(&mergeC2, "c2", 0, "right column")
}
