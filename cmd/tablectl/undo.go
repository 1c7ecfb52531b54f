package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Revert the document to its previous snapshot",
	Long: `Moves the on-disk undo stack for --file back one snapshot and
writes it as the current document. It is an error to undo past the
oldest recorded snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hf, err := loadHistoryFile(docFile)
		if err != nil {
			return err
		}
		if hf.Index <= 0 {
			return fmt.Errorf("tablectl: nothing to undo")
		}
		hf.Index--
		doc := hf.Snapshots[hf.Index]
		if err := saveDocument(docFile, doc); err != nil {
			return err
		}
		if err := saveHistoryFile(docFile, hf); err != nil {
			return err
		}
		fmt.Printf("reverted %s to snapshot %d\n", docFile, hf.Index)
		return nil
	},
}
