package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/builder"
	"github.com/jonathan/cv-builder/internal/logging"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/rendering"
)

// Export formats.
const (
	formatDoc = "doc"
	formatPDF = "pdf"
	formatAll = "all"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the CV as a Word document or PDF",
	Long:  "Restores saved progress (or sample content) and writes Resume.doc, Resume.pdf or both. PDF export requires Chrome/Chromium.",
	RunE:  runExport,
}

var (
	exportFormat    string
	exportOutputDir string
)

// printPDF is swapped in tests.
var printPDF = rendering.PrintPDF

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatDoc, "Export format: doc, pdf or all")
	exportCmd.Flags().StringVarP(&exportOutputDir, "out", "o", ".", "Output directory")
	rootCmd.AddCommand(exportCmd)
}

// exportFormats expands a --format value.
func exportFormats(format string) ([]string, error) {
	switch format {
	case formatDoc, formatPDF:
		return []string{format}, nil
	case formatAll:
		return []string{formatDoc, formatPDF}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want doc, pdf or all)", format)
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	formats, err := exportFormats(exportFormat)
	if err != nil {
		return err
	}

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

	if err := os.MkdirAll(exportOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var (
		mu      sync.Mutex
		written []string
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			path, err := a.exportOne(gctx, b, format)
			if err != nil {
				return err
			}
			mu.Lock()
			written = append(written, path)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintExports(written)
	return nil
}

// exportOne writes a single format into the output directory and returns its path.
func (a *app) exportOne(ctx context.Context, b *builder.Builder, format string) (string, error) {
	var (
		name string
		body []byte
	)

	switch format {
	case formatDoc:
		fragment, err := b.PreviewFragment()
		if err != nil {
			return "", fmt.Errorf("failed to render preview: %w", err)
		}
		export, err := rendering.RenderWord(fragment, a.cfg.Export.Filename, a.cfg.Export.Template)
		if err != nil {
			return "", err
		}
		name, body = export.Filename, export.Body
	case formatPDF:
		page, err := b.PreviewPage()
		if err != nil {
			return "", fmt.Errorf("failed to render preview: %w", err)
		}
		a.log.Info(rendering.PrintNotice)
		pdf, err := printPDF(ctx, page, a.cfg.Export.ChromeTimeout, logging.Component(a.log, "export"))
		if err != nil {
			return "", err
		}
		name, body = rendering.PDFFilename, pdf
	}

	path := filepath.Join(exportOutputDir, name)
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.log.WithField("path", path).Info("Export written")
	return path, nil
}
