package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// ShowTransactionParams identifies a transaction by its Safe tx hash
type ShowTransactionParams struct {
	SafeTxHash common.Hash
}

// TransactionDetails is a transaction record together with its reconstruction
type TransactionDetails struct {
	Network network.Network
	Record  *safe.MultisigTransaction
	SafeTx  *safe.SafeTx
	// TxHash is set once the transaction was executed on chain
	TxHash  *common.Hash
	Signers []common.Address
	// Decoded is the human readable form of the call data, empty when the
	// service could not decode it
	Decoded string
}

// Executed reports whether the transaction was already executed
func (d *TransactionDetails) Executed() bool {
	return d.TxHash != nil
}

// ShowTransaction fetches a single multisig transaction
type ShowTransaction struct {
	config   *config.RuntimeConfig
	services TransactionServiceFactory
	progress ProgressSink
}

// NewShowTransaction creates a new ShowTransaction use case
func NewShowTransaction(cfg *config.RuntimeConfig, services TransactionServiceFactory, progress ProgressSink) *ShowTransaction {
	return &ShowTransaction{config: cfg, services: services, progress: progress}
}

// Run executes the use case
func (uc *ShowTransaction) Run(ctx context.Context, params ShowTransactionParams) (*TransactionDetails, error) {
	net, service, err := serviceFor(uc.config, uc.services)
	if err != nil {
		return nil, err
	}

	record, err := withSpinner(ctx, uc.progress, "transaction", "Fetching transaction...", func() (*safe.MultisigTransaction, error) {
		return service.GetMultisigTransaction(ctx, params.SafeTxHash)
	})
	if err != nil {
		return nil, err
	}

	safeTx, err := record.ToSafeTx(new(big.Int).SetUint64(net.ChainID()))
	if err != nil {
		return nil, fmt.Errorf("invalid transaction %s: %w", params.SafeTxHash.Hex(), err)
	}

	// signatures the service stored may not all be recoverable offline
	signers, err := safeTx.Signers()
	if err != nil {
		uc.progress.Error(fmt.Sprintf("Could not recover signers: %v", err))
		signers = nil
	}

	return &TransactionDetails{
		Network: net,
		Record:  record,
		SafeTx:  safeTx,
		TxHash:  safeTx.TxHash,
		Signers: signers,
		Decoded: safe.DataDecodedToText(record.DataDecoded),
	}, nil
}
