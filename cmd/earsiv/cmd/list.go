package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/earsiv-client/internal/model"
	"github.com/rezonia/earsiv-client/internal/portal"
)

var (
	listStart      string
	listEnd        string
	listStatus     string
	listIssuedToMe bool
	listInterval   string
	listFormat     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices for a date range",
	Long: `List invoices issued by you, or issued to you with --issued-to-me.

Dates accept yyyy-MM-dd, dd/MM/yyyy or dd-MM-yyyy and default to today.

Examples:
  earsiv list --start 2024-01-01 --end 2024-01-31
  earsiv list --status Onaylandı -f json
  earsiv list --issued-to-me --start 2024-01-15 --end 2024-01-15 --interval 00:00-11:59`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStart, "start", "", "Start of the date range (default: today)")
	listCmd.Flags().StringVar(&listEnd, "end", "", "End of the date range (default: today)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Approval status filter (Onaylandı, Onaylanmadı, Silinmiş)")
	listCmd.Flags().BoolVar(&listIssuedToMe, "issued-to-me", false, "List invoices issued to your account")
	listCmd.Flags().StringVar(&listInterval, "interval", "", "Half-day window for single-day issued-to-me listings (00:00-11:59 or 12:00-23:59)")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json)")
}

func listFilter() portal.ListFilter {
	filter := portal.ListFilter{
		ApprovalStatus: listStatus,
		HourlyInterval: model.HourlySearchInterval(listInterval),
	}
	if listStart != "" {
		filter.StartDate = listStart
	}
	if listEnd != "" {
		filter.EndDate = listEnd
	}
	return filter
}

func fetchInvoices(cmd *cobra.Command) ([]model.BasicInvoice, error) {
	ctx := cmd.Context()
	client, err := connectedClient(ctx)
	if err != nil {
		return nil, err
	}

	if listIssuedToMe {
		return client.GetBasicInvoicesIssuedToMe(ctx, listFilter())
	}
	return client.GetBasicInvoices(ctx, listFilter())
}

func runList(cmd *cobra.Command, args []string) error {
	invoices, err := fetchInvoices(cmd)
	if err != nil {
		return err
	}

	switch listFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(invoices)
	case "table":
		printInvoiceTable(invoices)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", listFormat)
	}
}

func printInvoiceTable(invoices []model.BasicInvoice) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tNUMBER\tDATE\tCOUNTERPART\tSTATUS")
	for _, invoice := range invoices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			invoice.UUID(),
			invoice.DocumentNumber(),
			invoice.DocumentDate(),
			invoice.TitleOrFullName(),
			invoice.ApprovalStatus(),
		)
	}
	w.Flush()
	fmt.Printf("\n%d invoice(s)\n", len(invoices))
}
