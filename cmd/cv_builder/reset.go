package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/persistence"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved progress",
	Long:  "Removes the saved snapshot; the next start fills the form with sample content.",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	persister := persistence.NewPersister(a.store, a.cfg.Store.Key)
	if err := persister.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset saved progress: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved progress under key %q removed\n", persister.Key())
	return err
}
