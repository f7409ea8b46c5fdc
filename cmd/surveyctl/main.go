// Command surveyctl administers the SLINT survey store from the command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"slintsurvey/internal/app"
	"slintsurvey/internal/config"
	"slintsurvey/internal/logging"
)

var (
	// Global flags
	verbose     bool
	storeDriver string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "surveyctl",
	Short: "Administer the SLINT member survey",
	Long: `surveyctl validates the survey catalog, seeds and exports stored
responses, prints headline statistics and serves read-only reports over MCP.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if storeDriver != "" {
			cfg.StoreDriver = storeDriver
		}

		// Initialize logger; stdout is reserved for command output
		level := "warn"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New(level, false)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "Response store driver: mongo or sqlite (default: $STORE_DRIVER)")

	rootCmd.AddCommand(validateCmd, seedCmd, exportCmd, statsCmd, mcpCmd)
}

// openApp connects the response store; the CLI never needs Redis
func openApp(ctx context.Context) (*app.App, error) {
	return app.New(ctx, cfg, logger, app.Options{})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
