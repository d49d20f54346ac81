package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/libran/dictimport/internal/config"
	"github.com/libran/dictimport/internal/home"
	"github.com/libran/dictimport/version"
)

var (
	cfgFile string
	homeDir string
)

var rootCmd = &cobra.Command{
	Use:   "dictimport",
	Short: "Glossary importer for the Librán dictionary",
	Long: `dictimport turns page text extracted from scanned glossaries into the
ancient and modern Librán dictionary mappings.

The pipeline includes:
  - Text normalization (de-hyphenation, continuation merging, ligature folding)
  - Table recognition with a structured-to-unstructured fallback chain
  - Deterministic conflict resolution with a full audit trail
  - Direct import of pre-structured JSON dictionaries`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.dictimport/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "dictimport home directory (default: ~/.dictimport)",
	)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads config and the home directory and installs the logger.
func setup() (*config.Config, *home.Dir, *slog.Logger, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg := cm.Get()

	log := cfg.Logger()
	slog.SetDefault(log)

	hd, err := home.New(homeDir)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := hd.EnsureExists(); err != nil {
		return nil, nil, nil, err
	}
	return cfg, hd, log, nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the home directory and a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		hd, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := hd.EnsureExists(); err != nil {
			return err
		}
		if hd.ConfigExists() {
			fmt.Printf("config already exists: %s\n", hd.ConfigPath())
			return nil
		}
		if err := config.WriteDefault(hd.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", hd.ConfigPath())
		return nil
	},
}
