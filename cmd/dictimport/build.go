package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/libran/dictimport/internal/audit"
	"github.com/libran/dictimport/internal/build"
	"github.com/libran/dictimport/internal/source"
	"github.com/libran/dictimport/internal/tables"
)

var (
	buildOut         string
	buildPDF         string
	buildSupport     string
	buildExcludeList string
	buildWatch       bool
)

var buildCmd = &cobra.Command{
	Use:   "build <source>",
	Short: "Build the dictionary mappings from extracted page text",
	Long: `Build parses extracted page text (a directory of page-N.txt files, a
.json array of {page, text} objects, or a .jsonl stream) into the ancient
and modern dictionary mappings, writing the mappings and the full audit
trail to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, hd, log, err := setup()
		if err != nil {
			return err
		}

		srcPath := args[0]

		outDir := buildOut
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if outDir == "" {
			name := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
			outDir = hd.BuildPath(name)
		}

		excludePath := buildExcludeList
		if excludePath == "" {
			excludePath = cfg.ExcludeList
		}
		var excludeTerms []string
		if excludePath != "" {
			excludeTerms, err = build.LoadExcludeList(excludePath)
			if err != nil {
				return err
			}
			log.Info("exclude list loaded", "path", excludePath, "terms", len(excludeTerms))
		}

		opts := build.Options{
			ExcludeTerms:  excludeTerms,
			MinConfidence: cfg.MinConfidence,
			Logger:        log,
		}

		if err := runBuild(srcPath, outDir, opts, log); err != nil {
			return err
		}
		if buildWatch {
			return watchAndRebuild(cmd.Context(), srcPath, outDir, opts, log)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory (default: builds dir under home)")
	buildCmd.Flags().StringVar(&buildPDF, "pdf", "", "supporting PDF, verified against source page numbers")
	buildCmd.Flags().StringVar(&buildSupport, "support", "", "second page source appended to the main one")
	buildCmd.Flags().StringVar(&buildExcludeList, "exclude-list", "", "file of headwords to reject, one per line")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild when the source changes")
}

// runBuild executes one full build pass: load pages, parse, accumulate,
// resolve and write the reports.
func runBuild(srcPath, outDir string, opts build.Options, log *slog.Logger) error {
	pages, err := source.Load(srcPath)
	if err != nil {
		return err
	}
	log.Info("source loaded", "path", srcPath, "pages", len(pages))

	if buildSupport != "" {
		support, err := source.Load(buildSupport)
		if err != nil {
			return err
		}
		pages = append(pages, support...)
		log.Info("support source loaded", "path", buildSupport, "pages", len(support))
	}

	if buildPDF != "" {
		maxPage := 0
		for _, p := range pages {
			if p.Number > maxPage {
				maxPage = p.Number
			}
		}
		count, err := source.VerifyPDF(buildPDF, maxPage, log)
		if err != nil {
			return err
		}
		log.Info("supporting PDF verified", "path", buildPDF, "pages", count)
	}

	parser := tables.NewParser(log)
	builder := build.NewBuilder(opts)

	for _, p := range pages {
		parsed, err := parser.ParsePage(p.Text, p.Number)
		if err != nil {
			// Per-page failures are isolated; the build continues.
			log.Warn("page skipped", "page", p.Number, "error", err)
			continue
		}
		if err := builder.ProcessPage(parsed); err != nil {
			return err
		}
		log.Debug("page processed", "page", p.Number, "entries", len(parsed.Entries))
	}

	result := builder.Build()
	buildID, err := build.WriteReports(outDir, result)
	if err != nil {
		return err
	}

	findings := audit.NewValidator().CheckBuild(result)
	if len(findings) > 0 {
		if err := writeFindings(filepath.Join(outDir, "AUDIT.txt"), findings); err != nil {
			return err
		}
		log.Info("audit findings recorded", "count", len(findings))
	}

	log.Info("build complete",
		"build_id", buildID,
		"output", outDir,
		"ancient", result.Stats.AncientEntries,
		"modern", result.Stats.ModernEntries,
	)
	return nil
}

// writeFindings records informational audit findings alongside the reports.
func writeFindings(path string, findings []audit.Finding) error {
	var sb strings.Builder
	sb.WriteString("Audit findings (informational)\n==============================\n\n")
	for _, f := range findings {
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// watchAndRebuild reruns the build whenever the source changes, until the
// context is cancelled. Each pass uses a fresh builder: the accumulate
// state never carries across passes.
func watchAndRebuild(ctx context.Context, srcPath, outDir string, opts build.Options, log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent so editors that replace the file are still seen.
	watchTarget := srcPath
	if info, err := os.Stat(srcPath); err == nil && !info.IsDir() {
		watchTarget = filepath.Dir(srcPath)
	}
	if err := watcher.Add(watchTarget); err != nil {
		return fmt.Errorf("watching %s: %w", watchTarget, err)
	}
	log.Info("watching for changes", "path", srcPath)

	var timer *time.Timer
	rebuild := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Debounce bursts of events from a single save.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})
		case <-rebuild:
			log.Info("source changed, rebuilding")
			if err := runBuild(srcPath, outDir, opts, log); err != nil {
				log.Error("rebuild failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}
