package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saniainf/tablecore"
)

var saveOut string

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Validate the document and write it to --out",
	Long: `Loads --file, re-validates it through the full façade (shape and
registry), and writes the canonical form to --out (defaults to --file).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(docFile)
		if err != nil {
			return err
		}
		table, err := tablecore.Open(doc).Build()
		if err != nil {
			return fmt.Errorf("tablectl: %s is invalid: %w", docFile, err)
		}
		defer table.Close()

		out := saveOut
		if out == "" {
			out = docFile
		}
		if err := saveDocument(out, table.Model().ToJSON()); err != nil {
			return err
		}
		fmt.Printf("saved to %s\n", out)
		return nil
	},
}

func init() {
	saveCmd.Flags().StringVar(&saveOut, "out", "", "output path (default: --file)")
}
