package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/earsiv-client/internal/portal"
	"github.com/rezonia/earsiv-client/internal/render"
)

var (
	downloadType     string
	downloadOutput   string
	downloadUnsigned bool
	downloadCombine  bool
	downloadTimeout  time.Duration
)

var downloadCmd = &cobra.Command{
	Use:   "download [uuids...]",
	Short: "Download invoices as HTML, PDF, ZIP or XML",
	Long: `Download one or more invoices by UUID.

PDF output renders the portal's HTML view through headless Chrome, so a
Chrome or Chromium binary must be installed. --combine merges all requested
PDFs into a single file.

Examples:
  earsiv download 11111111-2222-3333-4444-555555555555 --type pdf
  earsiv download <uuid> --type xml -o fatura.xml
  earsiv download <uuid-1> <uuid-2> --type pdf --combine -o faturalar.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadType, "type", "t", "pdf", "Download type (html, pdf, zip, xml)")
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output file (default: <uuid>.<ext>)")
	downloadCmd.Flags().BoolVar(&downloadUnsigned, "unsigned", false, "Fetch the unsigned rendition")
	downloadCmd.Flags().BoolVar(&downloadCombine, "combine", false, "Merge all PDFs into one file (pdf only)")
	downloadCmd.Flags().DurationVar(&downloadTimeout, "timeout", 2*time.Minute, "Rendering timeout per invoice")
}

func runDownload(cmd *cobra.Command, args []string) error {
	if downloadCombine && downloadType != "pdf" {
		return fmt.Errorf("--combine only applies to --type pdf")
	}
	if downloadOutput != "" && len(args) > 1 && !downloadCombine {
		return fmt.Errorf("--output needs a single invoice or --combine")
	}

	ctx := cmd.Context()
	client, err := connectedClient(ctx)
	if err != nil {
		return err
	}

	var pdfs [][]byte
	for _, invoiceUUID := range args {
		data, ext, err := fetchDocument(ctx, client, invoiceUUID)
		if err != nil {
			return fmt.Errorf("%s: %w", invoiceUUID, err)
		}

		if downloadCombine {
			pdfs = append(pdfs, data)
			continue
		}

		path := downloadOutput
		if path == "" {
			path = invoiceUUID + "." + ext
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	if downloadCombine {
		path := downloadOutput
		if path == "" {
			path = "invoices.pdf"
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.MergePDFs(f, pdfs); err != nil {
			return err
		}
		fmt.Printf("Wrote %d invoice(s) to %s\n", len(pdfs), path)
	}
	return nil
}

func fetchDocument(ctx context.Context, client *portal.Client, invoiceUUID string) ([]byte, string, error) {
	signed := !downloadUnsigned

	switch downloadType {
	case "html":
		html, err := client.GetInvoiceHTML(ctx, invoiceUUID, signed, false)
		return []byte(html), "html", err
	case "pdf":
		html, err := client.GetInvoiceHTML(ctx, invoiceUUID, signed, false)
		if err != nil {
			return nil, "", err
		}
		renderCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
		defer cancel()
		pdf, err := render.HTMLToPDF(renderCtx, html, render.PDFOptions{})
		return pdf, "pdf", err
	case "zip":
		data, err := client.GetInvoiceZip(ctx, invoiceUUID, signed)
		return data, "zip", err
	case "xml":
		data, err := client.GetInvoiceXML(ctx, invoiceUUID, signed)
		return data, "xml", err
	default:
		return nil, "", fmt.Errorf("unknown download type: %s", downloadType)
	}
}
