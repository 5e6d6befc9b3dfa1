package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safe-eth/internal/cli/render"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

var safeAnnotations = map[string]string{serviceAnnotation: safe.ServiceName}

// NewSafeCmd creates the safe command group
func NewSafeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safe",
		Short: "Safe transaction service commands",
		Long: `Commands talking to the Safe Transaction Service of the selected network.

Write commands (add-delegate, remove-delegate, confirm, propose) sign with the key
given by --private-key or SAFE_PRIVATE_KEY and ask for confirmation unless --yes
or --non-interactive is set.`,
	}

	cmd.AddCommand(
		newSafeBalancesCmd(),
		newSafeTransactionsCmd(),
		newSafeTransactionCmd(),
		newSafeDelegatesCmd(),
		newSafeAddDelegateCmd(),
		newSafeRemoveDelegateCmd(),
		newSafeConfirmCmd(),
		newSafeProposeCmd(),
	)

	return cmd
}

func newSafeBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "balances <safe>",
		Short:       "List ether and token balances of a Safe",
		Args:        cobra.ExactArgs(1),
		Annotations: safeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			safeAddress, err := parseAddress("safe", args[0])
			if err != nil {
				return err
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListBalances.Run(cmd.Context(), usecase.SafeParams{Safe: safeAddress})
			if err != nil {
				return err
			}
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Output).RenderBalances(result)
		},
	}
}

func newSafeTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "txs <safe>",
		Aliases:     []string{"transactions"},
		Short:       "List multisig transactions of a Safe",
		Args:        cobra.ExactArgs(1),
		Annotations: safeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			safeAddress, err := parseAddress("safe", args[0])
			if err != nil {
				return err
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListTransactions.Run(cmd.Context(), usecase.SafeParams{Safe: safeAddress})
			if err != nil {
				return err
			}
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Output).RenderTransactions(result)
		},
	}
}

func newSafeTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "tx <safe-tx-hash>",
		Aliases:     []string{"transaction"},
		Short:       "Show a multisig transaction with its signers",
		Args:        cobra.ExactArgs(1),
		Annotations: safeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			safeTxHash, err := parseHash("safe tx hash", args[0])
			if err != nil {
				return err
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowTransaction.Run(cmd.Context(), usecase.ShowTransactionParams{SafeTxHash: safeTxHash})
			if err != nil {
				return err
			}
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Output).RenderTransaction(result)
		},
	}
}

func newSafeDelegatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "delegates <safe>",
		Short:       "List delegates of a Safe",
		Args:        cobra.ExactArgs(1),
		Annotations: safeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			safeAddress, err := parseAddress("safe", args[0])
			if err != nil {
				return err
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDelegates.Run(cmd.Context(), usecase.SafeParams{Safe: safeAddress})
			if err != nil {
				return err
			}
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Output).RenderDelegates(result)
		},
	}
}

func parseDelegateArgs(args []string) (usecase.DelegateParams, error) {
	safeAddress, err := parseAddress("safe", args[0])
	if err != nil {
		return usecase.DelegateParams{}, err
	}
	delegate, err := parseAddress("delegate", args[1])
	if err != nil {
		return usecase.DelegateParams{}, err
	}
	return usecase.DelegateParams{Safe: safeAddress, Delegate: delegate}, nil
}

func newSafeAddDelegateCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "add-delegate <safe> <delegate>",
		Short: "Register a delegate allowed to propose transactions",
		Long: `Register a delegate for a Safe. The configured key must belong to an owner;
it signs the delegate address together with the current hour.`,
		Args:        cobra.ExactArgs(2),
		Annotations: safeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseDelegateArgs(args)
			if err != nil {
				return err
			}
			params.Label = label

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageDelegates.Add(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Output).RenderDelegateChange("added", result)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Label stored with the delegate")

	return cmd
}

func newSafeRemoveDelegateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "remove-delegate <safe> <delegate>",
		Short:       "Remove a delegate of a Safe",
		Args:        cobra.ExactArgs(2),
		Annotations: safeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseDelegateArgs(args)
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageDelegates.Remove(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Output).RenderDelegateChange("removed", result)
		},
	}
}

func newSafeConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <safe-tx-hash>",
		Short: "Sign a pending transaction and post the signature",
		Long: `Fetch a pending transaction, check that its EIP-712 hash matches, sign it with
the configured key and post the new signature to the transaction service.`,
		Args:        cobra.ExactArgs(1),
		Annotations: safeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			safeTxHash, err := parseHash("safe tx hash", args[0])
			if err != nil {
				return err
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ConfirmTransaction.Run(cmd.Context(), usecase.ConfirmTransactionParams{SafeTxHash: safeTxHash})
			if err != nil {
				return err
			}
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Output).RenderConfirmation(result)
		},
	}
}

func newSafeProposeCmd() *cobra.Command {
	var (
		to        string
		value     string
		data      string
		operation string
		nonce     string
	)

	cmd := &cobra.Command{
		Use:   "propose <safe>",
		Short: "Propose a new multisig transaction",
		Long: `Propose a transaction to the transaction service. Without --nonce the next
nonce after the highest one known to the service is used. When a key is configured
the proposal carries its signature; otherwise an owner has to confirm it later.

Examples:
  safe-eth safe propose 0xSafe --to 0xRecipient --value 1000000000000000000 -n gnosis
  safe-eth safe propose 0xSafe --to 0xToken --data 0xa9059cbb... --nonce 12`,
		Args:        cobra.ExactArgs(1),
		Annotations: safeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			safeAddress, err := parseAddress("safe", args[0])
			if err != nil {
				return err
			}
			params := usecase.ProposeTransactionParams{Safe: safeAddress}

			if params.To, err = parseAddress("to", to); err != nil {
				return err
			}
			if params.Value, err = parseUint256("value", value); err != nil {
				return err
			}
			if params.Data, err = parseData(data); err != nil {
				return err
			}
			if params.Operation, err = parseOperation(operation); err != nil {
				return err
			}
			if nonce != "" {
				if params.Nonce, err = parseUint256("nonce", nonce); err != nil {
					return err
				}
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ProposeTransaction.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Output).RenderProposal(result)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target address")
	cmd.Flags().StringVar(&value, "value", "0", "Value in wei")
	cmd.Flags().StringVar(&data, "data", "", "Hex encoded call data")
	cmd.Flags().StringVar(&operation, "operation", "call", "call or delegatecall")
	cmd.Flags().StringVar(&nonce, "nonce", "", "Safe nonce (defaults to the next one)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
