package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/earsiv-client/internal/model"
	"github.com/rezonia/earsiv-client/internal/portal"
)

var signCode string

var signCmd = &cobra.Command{
	Use:   "sign [uuids...]",
	Short: "Sign draft invoices with an SMS confirmation code",
	Long: `Sign one or more unapproved invoices.

The portal sends a confirmation code to the phone number registered on your
account. Without --code the command sends the SMS and prompts for the code
interactively.

Examples:
  earsiv sign 11111111-2222-3333-4444-555555555555
  earsiv sign <uuid-1> <uuid-2> --code 123456  # code from a previous SMS`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)

	signCmd.Flags().StringVar(&signCode, "code", "", "SMS code (prompted for when omitted)")
}

func runSign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := connectedClient(ctx)
	if err != nil {
		return err
	}

	// Signing needs the native row of each draft, so resolve the UUIDs
	// against the unapproved listing first.
	filter := portal.ListFilter{ApprovalStatus: string(model.StatusUnapproved)}
	invoices := make([]model.BasicInvoice, 0, len(args))
	for _, invoiceUUID := range args {
		invoice, err := client.FindBasicInvoice(ctx, invoiceUUID, filter)
		if err != nil {
			return fmt.Errorf("%s: %w", invoiceUUID, err)
		}
		invoices = append(invoices, invoice)
	}

	sms, err := client.SendSMSCode(ctx)
	if err != nil {
		return err
	}

	code := signCode
	if code == "" {
		fmt.Printf("SMS code sent to %s. Enter code: ", sms.PhoneNumber)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		code = strings.TrimSpace(line)
	}
	if code == "" {
		return fmt.Errorf("no SMS code entered")
	}

	signed, err := client.SignInvoices(ctx, code, sms.OperationID, invoices)
	if err != nil {
		return err
	}
	if !signed {
		return fmt.Errorf("portal rejected the SMS code")
	}

	fmt.Printf("Signed %d invoice(s)\n", len(invoices))
	return nil
}
