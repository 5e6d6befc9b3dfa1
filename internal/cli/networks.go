package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safe-eth/internal/cli/render"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks supported by the explorer and transaction service",
		Long: `List every network with a built-in Blockscout or transaction service endpoint,
together with the URL that will be used once safe-eth.toml and flag overrides apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if service != "" && service != safe.ServiceName && service != blockscout.ServiceName {
				return fmt.Errorf("unknown service %q (expected %s or %s)", service, safe.ServiceName, blockscout.ServiceName)
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Service: service})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
		},
	}

	cmd.Flags().StringVar(&service, "service", "", fmt.Sprintf("Only list networks of one service (%s or %s)", safe.ServiceName, blockscout.ServiceName))

	return cmd
}
