package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/earsiv-client/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API facade over the portal.

The API provides endpoints for:
  - GET    /api/v1/invoices            - List invoices
  - POST   /api/v1/invoices            - Create a draft invoice
  - GET    /api/v1/invoices/:uuid      - Fetch one invoice
  - DELETE /api/v1/invoices/:uuid      - Delete a draft
  - GET    /api/v1/invoices/:uuid/html - Invoice HTML rendition
  - GET    /api/v1/invoices/:uuid/xml  - Invoice UBL XML
  - GET    /api/v1/user                - Account profile
  - PATCH  /api/v1/user                - Update account profile
  - GET    /api/v1/companies/:number   - Registry lookup
  - POST   /api/v1/sign/sms-code       - Send the signing SMS
  - POST   /api/v1/sign                - Sign drafts with the SMS code
  - GET    /health                     - Health check

Examples:
  # Start the server with credentials from the environment
  earsiv serve

  # Custom listen address, against the test portal
  earsiv serve --address :9000 --test`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default: config listen_addr)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	client, err := connectedClient(cmd.Context())
	if err != nil {
		return err
	}

	addr := serverAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	config := &server.Config{
		Address:      addr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}
	srv := server.NewServer(config, client)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", addr)
	return srv.Run()
}
