// Command tablectl is a small CLI that drives the tablecore façade end to
// end: create a document, paste into it, merge a range, undo, and save the
// result, each as its own subcommand operating on a JSON document file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var docFile string

var rootCmd = &cobra.Command{
	Use:   "tablectl",
	Short: "Drive a tablecore document from the command line",
	Long: `tablectl is a demonstration CLI over the tablecore façade.

Each subcommand loads the document at --file, applies one operation, and
writes the result back, alongside a sidecar undo history file.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&docFile, "file", "f", "table.json", "path to the document JSON file")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(pasteCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(saveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
