package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/libran/dictimport/internal/build"
	"github.com/libran/dictimport/internal/jsonimport"
	"github.com/libran/dictimport/internal/schema"
)

var (
	importOut     string
	importVariant string
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a pre-structured JSON dictionary",
	Long: `Import consumes an already-structured JSON dictionary, bypassing the
table parser. The layout is detected automatically: a simple key-value
map, a detailed map of entry objects, a map nested by variant, or a
clusters document from the curation tooling.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, hd, log, err := setup()
		if err != nil {
			return err
		}

		variant := schema.Variant(importVariant)
		if variant != schema.VariantAncient && variant != schema.VariantModern {
			return fmt.Errorf("invalid variant %q: want ancient or modern", importVariant)
		}

		outDir := importOut
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if outDir == "" {
			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			outDir = hd.BuildPath(name)
		}

		imp := jsonimport.NewImporter(log)
		result, err := imp.ImportFile(args[0], variant)
		if err != nil {
			return err
		}

		buildID, err := build.WriteReports(outDir, result)
		if err != nil {
			return err
		}
		log.Info("import complete",
			"build_id", buildID,
			"output", outDir,
			"ancient", len(result.AncientEntries),
			"modern", len(result.ModernEntries),
			"excluded", len(result.Excluded),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "output directory (default: builds dir under home)")
	importCmd.Flags().StringVar(&importVariant, "variant", "ancient", "target variant for single-namespace layouts: ancient or modern")
}
