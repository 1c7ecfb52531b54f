package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/saniainf/tablecore/model"
)

var (
	loadRows int
	loadCols int
	loadName string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Create a new document and write it to --file",
	Long: `Creates an empty document of the given size, stamps it with a fresh
UUID, and writes it to --file along with a fresh undo history.

Example:

	tablectl load --file table.json --rows 10 --cols 5 --name sheet1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := model.NewDocumentWithID(uuid.New().String(), loadName, loadRows, loadCols)
		if err := saveDocument(docFile, doc); err != nil {
			return err
		}
		if err := resetHistory(docFile, doc); err != nil {
			return err
		}
		fmt.Printf("created %q (%dx%d), id=%s, at %s\n", loadName, loadRows, loadCols, doc.Meta.ID, docFile)
		return nil
	},
}

func init() {
	loadCmd.Flags().IntVar(&loadRows, "rows", 10, "number of rows")
	loadCmd.Flags().IntVar(&loadCols, "cols", 5, "number of columns")
	loadCmd.Flags().StringVar(&loadName, "name", "sheet1", "document name")
}
