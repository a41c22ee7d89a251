package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/birdling/internal/assets"
	"github.com/at-ishikawa/birdling/internal/bootstrap"
	"github.com/at-ishikawa/birdling/internal/collection"
	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/species"
)

func newCollectionCommand() *cobra.Command {
	collectionCommand := &cobra.Command{
		Use:   "collection",
		Short: "Manage the birds you are learning",
	}
	collectionCommand.AddCommand(
		newCollectionAddCommand(),
		newCollectionRemoveCommand(),
		newCollectionListCommand(),
	)
	return collectionCommand
}

func newCollectionAddCommand() *cobra.Command {
	var offline bool
	command := &cobra.Command{
		Use:   "add <scientific name>",
		Short: "Add a bird to the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				var provider collection.SpeciesProvider
				if !offline {
					provider = env.speciesClient(app)
				}
				service := collection.NewService(env.items, env.mastery, provider)

				entry, err := service.Add(ctx, env.learnerID, args[0])
				switch {
				case errors.Is(err, collection.ErrAlreadyCollected):
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is already in your collection.\n", args[0])
					return nil
				case errors.Is(err, species.ErrSpeciesNotFound), errors.Is(err, learning.ErrItemNotFound):
					return fmt.Errorf("no species is named %q", args[0])
				case err != nil:
					return fmt.Errorf("service.Add() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s).\n", entry.Item.DisplayName(), entry.Item.ScientificName)
				return nil
			})
		},
	}
	command.Flags().BoolVar(&offline, "offline", false, "Only add birds that are already in the catalog")
	return command
}

func newCollectionRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <scientific name>",
		Short: "Remove a bird and its answers from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				service := collection.NewService(env.items, env.mastery, nil)
				err := service.Remove(ctx, env.learnerID, args[0])
				if errors.Is(err, learning.ErrItemNotFound) || errors.Is(err, learning.ErrRecordNotFound) {
					return fmt.Errorf("%s is not in your collection", args[0])
				}
				if err != nil {
					return fmt.Errorf("service.Remove() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
				return nil
			})
		},
	}
}

func newCollectionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the birds in the collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd.Context(), func(ctx context.Context, app *bootstrap.App, env *environment) error {
				service := collection.NewService(env.items, env.mastery, nil)
				entries, err := service.List(ctx, env.learnerID)
				if err != nil {
					return fmt.Errorf("service.List() > %w", err)
				}
				for _, entry := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n",
						assets.Stars(entry.Record.Level, learning.MaxLevel),
						entry.Item.DisplayName(),
						entry.Item.ScientificName,
					)
				}
				return nil
			})
		},
	}
}
