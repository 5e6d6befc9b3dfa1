package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// ProposeTransactionParams describes the call the Safe should make
type ProposeTransactionParams struct {
	Safe      common.Address
	To        common.Address
	Value     *big.Int
	Data      []byte
	Operation safe.Operation
	// Nonce is derived from the service history when nil
	Nonce *big.Int
}

// ProposeTransactionResult describes the proposal accepted by the service
type ProposeTransactionResult struct {
	Network    network.Network
	SafeTxHash common.Hash
	Nonce      *big.Int
	// Proposer is nil when the proposal was sent unsigned
	Proposer *common.Address
}

// ProposeTransaction builds a SafeTx, signs it when a key is configured and
// submits it to the transaction service
type ProposeTransaction struct {
	config    *config.RuntimeConfig
	services  TransactionServiceFactory
	signers   SignerProvider
	confirmer Confirmer
	progress  ProgressSink
}

// NewProposeTransaction creates a new ProposeTransaction use case
func NewProposeTransaction(
	cfg *config.RuntimeConfig,
	services TransactionServiceFactory,
	signers SignerProvider,
	confirmer Confirmer,
	progress ProgressSink,
) *ProposeTransaction {
	return &ProposeTransaction{
		config:    cfg,
		services:  services,
		signers:   signers,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *ProposeTransaction) Run(ctx context.Context, params ProposeTransactionParams) (*ProposeTransactionResult, error) {
	net, service, err := serviceFor(uc.config, uc.services)
	if err != nil {
		return nil, err
	}

	signer, err := uc.signers.Signer()
	if err != nil && !errors.Is(err, ErrNoSigner) {
		return nil, err
	}

	nonce := params.Nonce
	if nonce == nil {
		nonce, err = uc.nextNonce(ctx, service, params.Safe)
		if err != nil {
			return nil, err
		}
	}

	value := params.Value
	if value == nil {
		value = new(big.Int)
	}

	tx := &safe.SafeTx{
		ChainID:   new(big.Int).SetUint64(net.ChainID()),
		Safe:      params.Safe,
		To:        params.To,
		Value:     value,
		Data:      params.Data,
		Operation: params.Operation,
		SafeTxGas: new(big.Int),
		BaseGas:   new(big.Int),
		GasPrice:  new(big.Int),
		Nonce:     nonce,
	}
	safeTxHash := tx.SafeTxHash()

	prompt := fmt.Sprintf("Propose %s to %s (nonce %s, safe tx hash %s)", params.Operation, params.To.Hex(), nonce, safeTxHash.Hex())
	if err := confirm(ctx, uc.confirmer, uc.config.Interactive(), prompt); err != nil {
		return nil, err
	}

	result := &ProposeTransactionResult{
		Network:    net,
		SafeTxHash: safeTxHash,
		Nonce:      nonce,
	}

	if signer != nil {
		if _, err := tx.Sign(signer); err != nil {
			return nil, fmt.Errorf("failed to sign transaction: %w", err)
		}
		proposer := signer.Address()
		result.Proposer = &proposer
	} else {
		uc.progress.Info("No signer configured, proposing without signature")
	}

	_, err = withSpinner(ctx, uc.progress, "propose", "Proposing transaction...", func() (struct{}, error) {
		return struct{}{}, service.PostTransaction(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// nextNonce returns one past the highest nonce known to the service, or zero
// for a Safe without transactions
func (uc *ProposeTransaction) nextNonce(ctx context.Context, service TransactionService, safeAddress common.Address) (*big.Int, error) {
	txs, err := withSpinner(ctx, uc.progress, "propose", "Fetching nonce...", func() ([]safe.MultisigTransaction, error) {
		return service.GetTransactions(ctx, safeAddress)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to derive nonce: %w", err)
	}

	next := new(big.Int)
	for _, tx := range txs {
		nonce, ok := math.ParseBig256(tx.Nonce.String())
		if !ok {
			return nil, fmt.Errorf("invalid nonce %q in transaction %s", tx.Nonce, tx.SafeTxHash)
		}
		if candidate := new(big.Int).Add(nonce, big.NewInt(1)); candidate.Cmp(next) > 0 {
			next = candidate
		}
	}
	return next, nil
}
