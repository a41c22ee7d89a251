package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/birdling/internal/bootstrap"
	"github.com/at-ishikawa/birdling/internal/cli"
	"github.com/at-ishikawa/birdling/internal/database"
	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/scheduler"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				if err := database.EnsureSchema(ctx, env.db); err != nil {
					return fmt.Errorf("database.EnsureSchema() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "The %s database is ready.\n", env.cfg.Database.Driver)
				return nil
			})
		},
	}
}

func newPracticeCommand() *cobra.Command {
	mode := ModeFlag(learning.ModeRecall)
	var count int
	var lenient bool
	var metricsAddr string

	command := &cobra.Command{
		Use:   "practice",
		Short: "Practice the birds that need it most",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				if metricsAddr == "" {
					metricsAddr = env.cfg.Metrics.Address
				}
				if metricsAddr != "" {
					addr, err := app.Serve(metricsAddr, env.metrics.Handler())
					if err != nil {
						return fmt.Errorf("app.Serve() > %w", err)
					}
					slog.Default().Info("serving metrics", slog.String("addr", addr))
				}

				batchSize := env.cfg.Learning.BatchSize
				if count > 0 {
					batchSize = count
				}
				terminal := &cli.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}

				var session cli.Session
				var err error
				switch mode.GameMode() {
				case learning.ModeRecognition:
					session, err = cli.NewRecognitionQuizCLI(ctx, env.scheduler, env.learnerID, batchSize, terminal)
				default:
					session, err = cli.NewRecallQuizCLI(ctx, env.scheduler, env.learnerID, batchSize, env.cfg.Learning.RecallThreshold, lenient, terminal)
				}
				if errors.Is(err, scheduler.ErrEmptyCollection) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Your collection is empty. Add birds with \"birdling collection add <scientific name>\".")
					return nil
				}
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Practice session started (%s). Type 'quit' to exit.\n\n", mode.GameMode())
				return cli.Run(ctx, session)
			})
		},
	}

	flags := command.Flags()
	flags.Var(&mode, "mode", fmt.Sprintf("Game mode. Options: %s, %s", learning.ModeRecall, learning.ModeRecognition))
	flags.IntVar(&count, "count", 0, "Number of birds to practice (default: learning.batch_size)")
	flags.BoolVar(&lenient, "lenient", false, "Also accept parts of a name and initials in recall mode")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while practicing")
	return command
}
