package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safe-eth/internal/cli/render"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
)

// NewMetadataCmd creates the metadata command
func NewMetadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata <address>",
		Short: "Show verified contract metadata from Blockscout",
		Long: `Show the name and ABI of a contract verified on the Blockscout explorer
of the selected network. Unverified contracts are reported, not treated as errors.

Examples:
  safe-eth metadata 0x6810e776880C02933D47DB1b9fc05908e5386b96 --network gnosis
  safe-eth metadata 0x6810e776880C02933D47DB1b9fc05908e5386b96 -n 100 -o json`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{serviceAnnotation: blockscout.ServiceName},
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddress("contract", args[0])
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowContractMetadata.Run(cmd.Context(), usecase.ShowContractMetadataParams{
				Address: address,
			})
			if err != nil {
				return err
			}

			return render.NewMetadataRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
		},
	}

	return cmd
}
