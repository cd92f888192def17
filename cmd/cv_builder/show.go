package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/fields"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/persistence"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize saved progress",
	Long:  "Prints the saved fields and entries without modifying anything.",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the stored JSON unchanged")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	persister := persistence.NewPersister(a.store, a.cfg.Store.Key)
	if showRaw {
		raw, found, err := persister.Raw(ctx)
		if err != nil {
			return fmt.Errorf("failed to load saved progress: %w", err)
		}
		if !found {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "No saved progress under key %q\n", persister.Key())
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)
		return err
	}

	snap, found, err := persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load saved progress: %w", err)
	}
	if !found {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "No saved progress under key %q\n", persister.Key())
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSnapshot(fields.Default(), snap)
	return nil
}
