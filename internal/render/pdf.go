// Package render turns portal invoice documents into printable output:
// HTML to PDF through headless Chrome, UBL XML to HTML through an XSLT
// stylesheet, and merging of several PDFs into one file.
package render

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFOptions control the Chrome print job. The zero value prints portrait
// A4 with backgrounds at natural scale.
type PDFOptions struct {
	Landscape         bool
	Scale             float64
	PaperWidth        float64 // inches
	PaperHeight       float64 // inches
	MarginTop         float64 // inches
	MarginBottom      float64
	MarginLeft        float64
	MarginRight       float64
	PageRanges        string
	OmitBackground    bool
	PreferCSSPageSize bool
	Timeout           time.Duration
}

const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.7

	defaultPDFTimeout = 30 * time.Second
)

// HTMLToPDF renders an HTML document to PDF with headless Chrome.
// A Chrome or Chromium binary must be installed on the host.
func HTMLToPDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.PaperWidth == 0 {
		opts.PaperWidth = a4WidthInches
	}
	if opts.PaperHeight == 0 {
		opts.PaperHeight = a4HeightInches
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultPDFTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
		)...,
	)
	defer cancel()

	chromeCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	chromeCtx, cancel = context.WithTimeout(chromeCtx, opts.Timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithLandscape(opts.Landscape).
				WithScale(opts.Scale).
				WithPaperWidth(opts.PaperWidth).
				WithPaperHeight(opts.PaperHeight).
				WithMarginTop(opts.MarginTop).
				WithMarginBottom(opts.MarginBottom).
				WithMarginLeft(opts.MarginLeft).
				WithMarginRight(opts.MarginRight).
				WithPageRanges(opts.PageRanges).
				WithPrintBackground(!opts.OmitBackground).
				WithPreferCSSPageSize(opts.PreferCSSPageSize).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
