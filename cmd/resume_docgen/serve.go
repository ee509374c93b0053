package main

import (
	"fmt"
	"log"

	"github.com/jonathan/resume-docgen/internal/server"
	"github.com/jonathan/resume-docgen/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that renders posted or stored resumes to DOCX and PDF.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, then 8080)")
	serveCmd.Flags().StringVar(&generateEngine, "pdf-engine", "", "PDF engine: gofpdf or chrome")
	serveCmd.Flags().StringVar(&generateChrome, "chrome-path", "", "Chrome or Chromium binary for the chrome engine")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	applyGenerateFlags(&cfg)
	if servePort != 0 {
		cfg.Port = servePort
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		log.Printf("[serve] DATABASE_URL not set, /resumes endpoints are disabled")
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		Generator:   generator,
		RateLimit:   ratelimit.LoadConfig(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
