package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-docgen/internal/config"
	"github.com/jonathan/resume-docgen/internal/db"
	"github.com/jonathan/resume-docgen/internal/export"
	"github.com/jonathan/resume-docgen/internal/observability"
	"github.com/jonathan/resume-docgen/internal/source"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render resume JSON to DOCX and PDF",
	Long: `Loads one or more resumes from files, URLs or the database, validates them against
the resume schema and writes the requested formats to the output directory.`,
	RunE: runGenerate,
}

var (
	generateInputs    []string
	generateURLs      []string
	generateResumeIDs []string
	generateFormat    string
	generateOutput    string
	generateEngine    string
	generateChrome    string
	generateWorkers   int
)

func init() {
	generateCmd.Flags().StringSliceVarP(&generateInputs, "in", "i", nil, "Path to resume JSON file (repeatable)")
	generateCmd.Flags().StringSliceVar(&generateURLs, "url", nil, "URL of a resume JSON document (repeatable)")
	generateCmd.Flags().StringSliceVar(&generateResumeIDs, "resume-id", nil, "ID of a stored resume (repeatable, requires DATABASE_URL)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "all", "Output format: docx, pdf, a comma list, or all")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Output directory (default from config, then \".\")")
	generateCmd.Flags().StringVar(&generateEngine, "pdf-engine", "", "PDF engine: gofpdf or chrome")
	generateCmd.Flags().StringVar(&generateChrome, "chrome-path", "", "Chrome or Chromium binary for the chrome engine")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "Resumes rendered in parallel (default GOMAXPROCS)")

	rootCmd.AddCommand(generateCmd)
}

// generateOptions is the resolved input of one generate run.
type generateOptions struct {
	Sources []source.Source
	Formats []export.Format
	OutDir  string
	Workers int
	Verbose bool
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if len(generateInputs)+len(generateURLs)+len(generateResumeIDs) == 0 {
		return fmt.Errorf("at least one of --in, --url or --resume-id is required")
	}

	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	applyGenerateFlags(&cfg)

	formats, err := parseFormats(generateFormat)
	if err != nil {
		return err
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sources, closeStore, err := buildSources(ctx, cfg, generateInputs, generateURLs, generateResumeIDs)
	if err != nil {
		return err
	}
	defer closeStore()

	_, err = generateResumes(ctx, generator, generateOptions{
		Sources: sources,
		Formats: formats,
		OutDir:  cfg.OutputDir,
		Workers: generateWorkers,
		Verbose: cfg.Verbose,
	}, os.Stdout)
	return err
}

// applyGenerateFlags overrides configuration with explicitly set flags.
func applyGenerateFlags(cfg *config.Config) {
	if generateOutput != "" {
		cfg.OutputDir = generateOutput
	}
	if generateEngine != "" {
		cfg.PDFEngine = generateEngine
	}
	if generateChrome != "" {
		cfg.ChromePath = generateChrome
	}
}

// buildSources turns flag values into sources. Stored resumes open one database
// connection shared by every source; the returned func closes it.
func buildSources(ctx context.Context, cfg config.Config, files, urls, ids []string) ([]source.Source, func(), error) {
	var sources []source.Source
	for _, path := range files {
		sources = append(sources, source.File{Path: path})
	}
	for _, address := range urls {
		sources = append(sources, source.URL{Address: address})
	}

	closeStore := func() {}
	if len(ids) == 0 {
		return sources, closeStore, nil
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, closeStore, fmt.Errorf("invalid resume id %q: %w", raw, err)
		}
		parsed = append(parsed, id)
	}

	if cfg.DatabaseURL == "" {
		return nil, closeStore, fmt.Errorf("--resume-id requires DATABASE_URL or database_url in config")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, closeStore, err
	}
	for _, id := range parsed {
		sources = append(sources, source.Stored{Store: database, ID: id})
	}
	return sources, database.Close, nil
}

// generateResumes renders every source in every format on a bounded worker pool
// and saves the artifacts. Two sources producing the same filename fail the run.
func generateResumes(ctx context.Context, generator *export.Generator, opts generateOptions, out io.Writer) ([]string, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	saver := export.DirSaver{Dir: opts.OutDir}
	printer := observability.NewPrinter(out)

	var (
		mu        sync.Mutex
		written   = make(map[string]string)
		locations []string
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, src := range opts.Sources {
		eg.Go(func() error {
			data, err := src.Load(egCtx)
			if err != nil {
				return &export.DataLoadError{Source: src.Describe(), Cause: err}
			}

			artifacts := make([]*export.Artifact, 0, len(opts.Formats))
			for _, format := range opts.Formats {
				artifact, err := generator.Generate(egCtx, data, format)
				if err != nil {
					return fmt.Errorf("%s: %w", src.Describe(), err)
				}
				artifacts = append(artifacts, artifact)
			}

			mu.Lock()
			defer mu.Unlock()
			for _, artifact := range artifacts {
				if prev, ok := written[artifact.Filename]; ok {
					return fmt.Errorf("%s and %s both produce %s", prev, src.Describe(), artifact.Filename)
				}
				written[artifact.Filename] = src.Describe()
			}

			saved := make([]string, 0, len(artifacts))
			for _, artifact := range artifacts {
				location, err := saver.Save(egCtx, artifact)
				if err != nil {
					return err
				}
				saved = append(saved, location)
			}
			locations = append(locations, saved...)

			if opts.Verbose {
				printer.PrintResume(data)
				printer.PrintIncompleteEntries(data.IncompleteEntries())
				printer.PrintArtifacts(artifacts, saved)
			} else {
				for _, location := range saved {
					fmt.Fprintf(out, "Wrote %s\n", location)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return locations, nil
}
