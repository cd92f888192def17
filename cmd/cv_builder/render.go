package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the CV preview as HTML",
	Long:  "Restores saved progress (or sample content) and writes the preview page, or only the printable CV fragment, to a file or stdout.",
	RunE:  runRender,
}

var (
	renderOutputFile string
	renderFragment   bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output HTML file (default stdout)")
	renderCmd.Flags().BoolVar(&renderFragment, "fragment", false, "Render only the printable CV without the page shell")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.newBuilder(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	var out string
	if renderFragment {
		out, err = b.PreviewFragment()
	} else {
		out, err = b.PreviewPage()
	}
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	if renderOutputFile == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(renderOutputFile, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	a.log.WithField("path", renderOutputFile).Info("Preview written")
	return nil
}
