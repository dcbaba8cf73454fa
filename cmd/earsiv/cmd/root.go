package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/earsiv-client/internal/config"
	"github.com/rezonia/earsiv-client/internal/logger"
	"github.com/rezonia/earsiv-client/internal/portal"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	testMode   bool
	anonymous  bool
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "earsiv",
	Short: "Manage e-Arşiv invoices from the command line",
	Long: `earsiv talks to the GİB e-Arşiv portal using your interactive
portal credentials. It can list, create, download, export and sign invoices.

Credentials come from flags, a YAML config file, a .env file or the
EARSIV_USERNAME / EARSIV_PASSWORD environment variables.

Examples:
  # List this month's invoices
  earsiv list --start 2024-01-01 --end 2024-01-31

  # Export a listing to a spreadsheet
  earsiv export --start 2024-01-01 --end 2024-01-31 -o invoices.xlsx

  # Download one invoice as PDF
  earsiv download <uuid> --type pdf -o fatura.pdf

  # Try the test portal without an account
  earsiv list --anonymous`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test", false, "Use the test portal (env: EARSIV_TEST_MODE)")
	rootCmd.PersistentFlags().BoolVar(&anonymous, "anonymous", false, "Use an anonymous test account (env: EARSIV_ANONYMOUS)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	loaded, err := config.Load(configFile)
	if err != nil {
		cobra.CheckErr(err)
	}
	cfg = loaded

	if testMode {
		cfg.TestMode = true
	}
	if anonymous {
		cfg.Anonymous = true
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.LogLevel
	logConfig.Format = cfg.LogFormat
	cobra.CheckErr(logger.Setup(logConfig))
}

// newClient builds a portal client from the resolved configuration without
// touching the network.
func newClient() *portal.Client {
	opts := []portal.Option{
		portal.WithTestMode(cfg.TestMode),
		portal.WithLogger(logger.WithComponent("portal")),
	}
	if cfg.Username != "" {
		opts = append(opts, portal.WithCredentials(cfg.Username, cfg.Password))
	}
	return portal.NewClient(opts...)
}

// connectedClient logs in, anonymously when configured.
func connectedClient(ctx context.Context) (*portal.Client, error) {
	client := newClient()

	if cfg.Anonymous {
		if err := client.UseAnonymousAccount(ctx); err != nil {
			return nil, fmt.Errorf("anonymous login: %w", err)
		}
		if err := client.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		return client, nil
	}

	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return client, nil
}
