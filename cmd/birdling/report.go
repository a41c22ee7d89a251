package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/birdling/internal/bootstrap"
	"github.com/at-ishikawa/birdling/internal/report"
)

func newReportCommand() *cobra.Command {
	var options report.Options
	command := &cobra.Command{
		Use:   "report",
		Short: "Write a learning report in markdown, and optionally PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Month < 0 || options.Month > 12 {
				return fmt.Errorf("invalid month %d", options.Month)
			}
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				generator := report.NewGenerator(env.scheduler, env.mastery, env.cfg.Templates.ReportTemplate, env.cfg.Outputs.ReportDirectory, env.location)
				paths, err := generator.Generate(ctx, env.learnerID, options)
				if err != nil {
					return fmt.Errorf("generator.Generate() > %w", err)
				}
				for _, path := range paths {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				}
				return nil
			})
		},
	}
	flags := command.Flags()
	flags.BoolVar(&options.PDF, "pdf", false, "Also convert the report to PDF")
	flags.IntVar(&options.Year, "year", 0, "Only include this year in the monthly table")
	flags.IntVar(&options.Month, "month", 0, "Only include this month (1-12) in the monthly table")
	return command
}
