package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/birdling/internal/bootstrap"
	"github.com/at-ishikawa/birdling/internal/datasync"
)

func newExportCommand() *cobra.Command {
	var output string
	command := &cobra.Command{
		Use:   "export",
		Short: "Export the collection and answers to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				doc, err := datasync.NewExporter(env.mastery).Export(ctx, env.learnerID)
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}

				path := output
				if path == "" {
					path = filepath.Join(env.cfg.Outputs.ExportDirectory, fmt.Sprintf("birdling-%d.yml", env.learnerID))
				}
				if err := datasync.WriteFile(path, doc); err != nil {
					return fmt.Errorf("datasync.WriteFile() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d birds to %s\n", len(doc.Birds), path)
				return nil
			})
		},
	}
	command.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <outputs.export_directory>/birdling-<learner id>.yml)")
	return command
}

func newImportCommand() *cobra.Command {
	var dryRun bool
	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a collection exported with the export command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := datasync.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("datasync.ReadFile() > %w", err)
			}

			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				out := cmd.OutOrStdout()
				importer := datasync.NewImporter(env.items, env.mastery, out)
				result, err := importer.Import(ctx, env.learnerID, doc, datasync.ImportOptions{DryRun: dryRun})
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}

				_, _ = fmt.Fprintln(out, "\nImport Summary:")
				if dryRun {
					_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
				}
				_, _ = fmt.Fprintf(out, "  Birds:    %d new in the catalog\n", result.ItemsNew)
				_, _ = fmt.Fprintf(out, "  Records:  %d new, %d skipped\n", result.RecordsNew, result.RecordsSkipped)
				_, _ = fmt.Fprintf(out, "  Answers:  %d new, %d warnings\n", result.AttemptsNew, result.AttemptsWarnings)
				return nil
			})
		},
	}
	command.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	return command
}
