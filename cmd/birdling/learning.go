package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/birdling/internal/assets"
	"github.com/at-ishikawa/birdling/internal/bootstrap"
	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/matcher"
	"github.com/at-ishikawa/birdling/internal/scheduler"
)

func newCheckCommand() *cobra.Command {
	var threshold float64
	var candidates []string

	command := &cobra.Command{
		Use:   "check <answer> <expected>",
		Short: "Check whether an answer would be accepted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, expected := args[0], args[1]
			out := cmd.OutOrStdout()

			verdict := "wrong"
			if matcher.IsCloseMatch(input, expected, threshold) {
				verdict = "correct"
			}
			result := matcher.AdvancedMatch(input, expected, matcher.WithThreshold(threshold))
			_, _ = fmt.Fprintf(out, "%s (similarity %.2f, distance %d)\n", verdict, matcher.Similarity(input, expected), matcher.Distance(input, expected))
			_, _ = fmt.Fprintf(out, "lenient: %t (%s)\n", result.IsMatch, result.Type)
			if !matcher.IsReasonableAttempt(input, expected) {
				_, _ = fmt.Fprintln(out, "this does not look like an attempt")
			}
			for _, suggestion := range matcher.Suggestions(input, candidates, matcher.DefaultMaxSuggestions) {
				_, _ = fmt.Fprintf(out, "did you mean %s? (%.2f)\n", suggestion.Text, suggestion.Similarity)
			}
			return nil
		},
	}
	command.Flags().Float64Var(&threshold, "threshold", matcher.DefaultThreshold, "Similarity an answer needs")
	command.Flags().StringSliceVar(&candidates, "candidates", nil, "Names to suggest from")
	return command
}

func newDueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List the birds due for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				due, err := env.scheduler.DueForReview(ctx, env.learnerID)
				if err != nil {
					return fmt.Errorf("scheduler.DueForReview() > %w", err)
				}
				out := cmd.OutOrStdout()
				if len(due) == 0 {
					_, _ = fmt.Fprintln(out, "Nothing is due.")
					return nil
				}
				for _, entry := range due {
					_, _ = fmt.Fprintf(out, "%s  %s (%s), last practiced %s\n",
						assets.Stars(entry.Record.Level, learning.MaxLevel),
						entry.Item.DisplayName(),
						entry.Item.ScientificName,
						formatDate(entry.Record.LastPracticedAt, env.location),
					)
				}
				return nil
			})
		},
	}
}

func newStatsCommand() *cobra.Command {
	format := FormatText
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				stats, err := env.scheduler.LearningStats(ctx, env.learnerID)
				if err != nil {
					return fmt.Errorf("scheduler.LearningStats() > %w", err)
				}
				return writeStats(cmd.OutOrStdout(), stats, format)
			})
		},
	}
	command.Flags().Var(&format, "format", fmt.Sprintf("Output format. Options: %s, %s, %s", FormatText, FormatJSON, FormatYAML))
	return command
}

func writeStats(out io.Writer, stats scheduler.Stats, format FormatFlag) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(stats); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() {
			_ = encoder.Close()
		}()
		if err := encoder.Encode(stats); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		return nil
	}

	_, _ = fmt.Fprintf(out, "Birds:           %d (%d mastered)\n", stats.TotalItems, stats.MasteredItems)
	_, _ = fmt.Fprintf(out, "Answers:         %d\n", stats.TotalSessions)
	_, _ = fmt.Fprintf(out, "Accuracy (7d):   %d%%\n", stats.RecentAccuracy)
	_, _ = fmt.Fprintf(out, "Streak:          %d days\n", stats.Streak)
	for _, level := range stats.LevelDistribution {
		_, _ = fmt.Fprintf(out, "  %s  %d\n", assets.Stars(level.Level, learning.MaxLevel), level.Count)
	}
	return nil
}

func newProgressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show recent answers and the birds that come next",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				progress, err := env.scheduler.Progress(ctx, env.learnerID)
				if err != nil {
					return fmt.Errorf("scheduler.Progress() > %w", err)
				}

				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(out, "Recent answers:")
				for _, activity := range progress.RecentActivity {
					result := "wrong"
					if activity.Attempt.Correct {
						result = "correct"
					}
					_, _ = fmt.Fprintf(out, "  %s  %-8s %-12s %s\n",
						activity.Attempt.CreatedAt.In(env.location).Format("2006-01-02 15:04"),
						result,
						activity.Attempt.Mode,
						activity.Item.DisplayName(),
					)
				}
				_, _ = fmt.Fprintln(out, "Up next:")
				for _, entry := range progress.UpNext {
					_, _ = fmt.Fprintf(out, "  %s  %s\n", assets.Stars(entry.Record.Level, learning.MaxLevel), entry.Item.DisplayName())
				}
				levels := make([]string, 0, len(progress.LevelDistribution))
				for _, level := range progress.LevelDistribution {
					levels = append(levels, fmt.Sprintf("level %d: %d", level.Level, level.Count))
				}
				_, _ = fmt.Fprintf(out, "Levels: %s\n", strings.Join(levels, ", "))
				return nil
			})
		},
	}
}

func formatDate(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "never"
	}
	return t.In(loc).Format("2006-01-02")
}
