package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/earsiv-client/internal/export"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an invoice listing to XLSX or CSV",
	Long: `Export the invoices matching a listing to a spreadsheet or CSV file.

The format is inferred from the output file extension unless --export-format
is given.

Examples:
  earsiv export --start 2024-01-01 --end 2024-01-31 -o invoices.xlsx
  earsiv export --status Onaylandı -o approved.csv`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&listStart, "start", "", "Start of the date range (default: today)")
	exportCmd.Flags().StringVar(&listEnd, "end", "", "End of the date range (default: today)")
	exportCmd.Flags().StringVar(&listStatus, "status", "", "Approval status filter")
	exportCmd.Flags().BoolVar(&listIssuedToMe, "issued-to-me", false, "Export invoices issued to your account")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "invoices.xlsx", "Output file")
	exportCmd.Flags().StringVar(&exportFormat, "export-format", "", "Force the output format (xlsx, csv)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := exportFormat
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(exportOutput), ".")
	}
	if format != "xlsx" && format != "csv" {
		return fmt.Errorf("unsupported export format: %s", format)
	}

	invoices, err := fetchInvoices(cmd)
	if err != nil {
		return err
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "csv" {
		err = export.CSV(f, invoices)
	} else {
		err = export.XLSX(f, invoices)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d invoice(s) to %s\n", len(invoices), exportOutput)
	return nil
}
