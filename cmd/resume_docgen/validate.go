package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-docgen/internal/observability"
	"github.com/jonathan/resume-docgen/internal/schemas"
	"github.com/jonathan/resume-docgen/internal/source"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate resume JSON against the schema",
	Long:  "Checks each resume file against the resume schema and reports entries that the renderers will skip.",
	RunE:  runValidate,
}

var validateInputs []string

func init() {
	validateCmd.Flags().StringSliceVarP(&validateInputs, "in", "i", nil, "Path to resume JSON file (required, repeatable)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if invalid := validateFiles(ctx, validateInputs, os.Stdout); invalid > 0 {
		return fmt.Errorf("%d of %d files failed validation", invalid, len(validateInputs))
	}
	return nil
}

// validateFiles reports on every file and returns how many failed to load.
// Incomplete entries are reported but do not fail a file.
func validateFiles(ctx context.Context, paths []string, out io.Writer) int {
	printer := observability.NewPrinter(out)
	invalid := 0
	for _, path := range paths {
		data, err := source.File{Path: path}.Load(ctx)
		if err != nil {
			invalid++
			fmt.Fprintf(out, "❌ %s\n", path)
			var verr *schemas.ValidationError
			if errors.As(err, &verr) {
				for _, fe := range verr.Errors {
					fmt.Fprintf(out, "   %s: %s\n", fe.Field, fe.Message)
				}
			} else {
				fmt.Fprintf(out, "   %v\n", err)
			}
			continue
		}

		fmt.Fprintf(out, "✅ %s\n", path)
		if verbose {
			printer.PrintResume(data)
		}
		printer.PrintIncompleteEntries(data.IncompleteEntries())
	}
	return invalid
}
