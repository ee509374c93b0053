package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-docgen/internal/config"
	"github.com/jonathan/resume-docgen/internal/export"
	"github.com/jonathan/resume-docgen/internal/layout"
	"github.com/jonathan/resume-docgen/internal/typography"
)

// loadSettings resolves configuration from the config file, then the environment,
// then built-in defaults. Command flags are applied by the caller afterwards.
func loadSettings(path string) (config.Config, error) {
	var fileCfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	cfg := fileCfg.MergeWithDefaults(config.FromEnv())
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newEngine returns the PDF engine named by the configuration.
func newEngine(cfg config.Config) (layout.Engine, error) {
	switch cfg.PDFEngine {
	case "", config.EngineFPDF:
		return layout.NewFPDFEngine(), nil
	case config.EngineChrome:
		path := cfg.ChromePath
		if path == "" {
			found, err := layout.FindChrome()
			if err != nil {
				return nil, err
			}
			path = found
		}
		engine := layout.NewChromeEngine(path, cfg.Timeout())
		engine.Verbose = cfg.Verbose
		return engine, nil
	default:
		return nil, fmt.Errorf("unknown pdf engine %q (expected %s or %s)", cfg.PDFEngine, config.EngineFPDF, config.EngineChrome)
	}
}

// newGenerator validates the configuration and wires a generator to its engine.
func newGenerator(cfg config.Config) (*export.Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	return export.NewGenerator(typography.Default(), engine), nil
}

// parseFormats expands a --format value. "all" selects every supported format.
func parseFormats(value string) ([]export.Format, error) {
	if strings.EqualFold(strings.TrimSpace(value), "all") {
		return export.Formats(), nil
	}

	var formats []export.Format
	seen := make(map[export.Format]bool)
	for _, part := range strings.Split(value, ",") {
		f, err := export.ParseFormat(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}
