package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/libran/dictimport/internal/source"
	"github.com/libran/dictimport/internal/tables"
)

var inspectPage int

var inspectCmd = &cobra.Command{
	Use:   "inspect <source>",
	Short: "Parse source pages and print the extracted entries",
	Long: `Inspect runs the table parser over the source without building the
dictionaries, printing the extracted entries and parsing notes as JSON.
Useful for checking what a page yields before a full build.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, log, err := setup()
		if err != nil {
			return err
		}

		pages, err := source.Load(args[0])
		if err != nil {
			return err
		}

		parser := tables.NewParser(log)
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")

		found := false
		for _, p := range pages {
			if inspectPage > 0 && p.Number != inspectPage {
				continue
			}
			found = true

			parsed, err := parser.ParsePage(p.Text, p.Number)
			if err != nil {
				log.Warn("page failed to parse", "page", p.Number, "error", err)
				continue
			}
			parsed.RawText = ""
			if err := enc.Encode(parsed); err != nil {
				return err
			}
		}
		if inspectPage > 0 && !found {
			return fmt.Errorf("page %d not present in source", inspectPage)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectPage, "page", "p", 0, "inspect a single page number (default: all pages)")
}
