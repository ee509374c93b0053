package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-docgen/internal/db"
	"github.com/jonathan/resume-docgen/internal/source"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store resume JSON in the database",
	Long:  "Validates resume files and stores them in PostgreSQL so they can be exported by id.",
	RunE:  runImport,
}

var importInputs []string

func init() {
	importCmd.Flags().StringSliceVarP(&importInputs, "in", "i", nil, "Path to resume JSON file (required, repeatable)")

	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or database_url in config is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	return importFiles(ctx, database, importInputs, os.Stdout)
}

// resumeCreator is the database surface used by import.
type resumeCreator interface {
	CreateResume(ctx context.Context, firstName, lastName string, content json.RawMessage) (*db.Resume, error)
}

// importFiles validates every file before storing any of them.
func importFiles(ctx context.Context, store resumeCreator, paths []string, out io.Writer) error {
	type pending struct {
		path    string
		cleaned []byte
		first   string
		last    string
	}

	docs := make([]pending, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		data, err := source.Decode("file "+path, raw)
		if err != nil {
			return err
		}
		cleaned, err := source.Clean(raw)
		if err != nil {
			return err
		}
		docs = append(docs, pending{path: path, cleaned: cleaned, first: data.FirstName, last: data.LastName})
	}

	for _, doc := range docs {
		resume, err := store.CreateResume(ctx, doc.first, doc.last, doc.cleaned)
		if err != nil {
			return fmt.Errorf("failed to store %s: %w", doc.path, err)
		}
		fmt.Fprintf(out, "%s\t%s\n", resume.ID, doc.path)
	}
	return nil
}
