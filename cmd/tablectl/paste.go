package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pasteRow  int
	pasteCol  int
	pasteData string
	pasteHTML bool
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Paste TSV or HTML table text into the document",
	Long: `Parses --data as tab-separated values (or, with --html, an HTML
<table> fragment) and writes it into the document starting at
(--row,--col), growing the grid as needed.

Example:

	tablectl paste --file table.json --row 0 --col 0 --data $'a\tb\nc\td'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := openTable(docFile)
		if err != nil {
			return err
		}
		defer table.Close()

		if pasteHTML {
			parsed := table.PasteHTML(pasteRow, pasteCol, pasteData)
			if !parsed.Success {
				return fmt.Errorf("tablectl: could not find a <table> in --data")
			}
		} else {
			table.Paste(pasteRow, pasteCol, pasteData)
		}

		if err := persist(docFile, table); err != nil {
			return err
		}
		fmt.Printf("pasted into %s at (%d,%d)\n", docFile, pasteRow, pasteCol)
		return nil
	},
}

func init() {
	pasteCmd.Flags().IntVar(&pasteRow, "row", 0, "starting row")
	pasteCmd.Flags().IntVar(&pasteCol, "col", 0, "starting column")
	pasteCmd.Flags().StringVar(&pasteData, "data", "", "TSV or HTML table text to paste")
	pasteCmd.Flags().BoolVar(&pasteHTML, "html", false, "treat --data as an HTML table fragment")
	pasteCmd.MarkFlagRequired("data")
}
