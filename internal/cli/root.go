package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safe-eth/internal/app"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// serviceAnnotation marks commands that talk to a per-network service.
// Its value is the service name used to offer networks interactively.
const serviceAnnotation = "service"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safe-eth",
		Short: "Query block explorers and the Safe transaction service",
		Long: `safe-eth reads verified contract metadata from Blockscout explorers and
talks to the Safe Transaction Service: list balances, transactions and
delegates of a Safe, confirm pending transactions and propose new ones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			v := config.SetupViper(workDir, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			if service, ok := cmd.Annotations[serviceAnnotation]; ok {
				return selectNetwork(ctx, appInstance, service)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network name or chain id (e.g. gnosis, 100)")
	rootCmd.PersistentFlags().StringP("output", "o", string(config.OutputTable), "Output format: table, json or yaml")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Overall command timeout (0 disables it)")
	rootCmd.PersistentFlags().Float64("rate-limit", 0, "Maximum transaction service requests per second (0 = unlimited)")
	rootCmd.PersistentFlags().String("private-key", "", "Hex private key used to sign (prefer SAFE_PRIVATE_KEY)")
	rootCmd.PersistentFlags().String("transaction-service-url", "", "Override the transaction service base URL")
	rootCmd.PersistentFlags().String("blockscout-url", "", "Override the Blockscout explorer base URL")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	metadataCmd := NewMetadataCmd()
	metadataCmd.GroupID = "main"
	rootCmd.AddCommand(metadataCmd)

	safeCmd := NewSafeCmd()
	safeCmd.GroupID = "main"
	rootCmd.AddCommand(safeCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// selectNetwork prompts for a network when none was configured and prompts are allowed
func selectNetwork(ctx context.Context, appInstance *app.App, service string) error {
	cfg := appInstance.Config
	if cfg.Network != 0 || !cfg.Interactive() || cfg.Output != config.OutputTable {
		return nil
	}

	var candidates []network.Network
	switch service {
	case blockscout.ServiceName:
		candidates = network.SortedKeys(blockscout.NetworkWithURL)
	default:
		candidates = network.SortedKeys(safe.TransactionServiceURLs)
	}

	net, err := appInstance.Selector.SelectNetwork(ctx, candidates, "Select network")
	if err != nil {
		return err
	}
	cfg.Network = net
	return nil
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
