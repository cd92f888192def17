package rendering

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// PrintNotice is shown to the user alongside a print export.
const PrintNotice = "Opening Print Preview. Please choose 'Save as PDF' in the Destination list to download as a PDF file."

// DefaultPrintTimeout bounds a single headless print.
const DefaultPrintTimeout = 30 * time.Second

// PDF export defaults.
const (
	PDFFilename    = "Resume.pdf"
	PDFContentType = "application/pdf"
)

// PrintPDF renders the preview page in headless Chromium and prints it to PDF using the
// page's print stylesheet. Requires Chrome/Chromium to be installed on the system.
func PrintPDF(ctx context.Context, pageHTML string, timeout time.Duration, log *logrus.Entry) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	if log != nil {
		log.WithField("bytes", len(pageHTML)).Debug("Starting headless browser for print")
	}

	// Create browser context with timeout
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, pageHTML).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{
			Message: "browser print failed",
			Cause:   fmt.Errorf("chromedp: %w", err),
		}
	}

	if log != nil {
		log.WithField("bytes", len(pdf)).Debug("Printed PDF")
	}
	return pdf, nil
}
