package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// ErrAlreadyExecuted is returned when confirming a transaction that was mined
var ErrAlreadyExecuted = errors.New("transaction already executed")

// ConfirmTransactionParams identifies the transaction to co-sign
type ConfirmTransactionParams struct {
	SafeTxHash common.Hash
}

// ConfirmTransactionResult describes the confirmation that was posted
type ConfirmTransactionResult struct {
	Network    network.Network
	SafeTxHash common.Hash
	Signer     common.Address
	Signature  []byte
	// Signers lists every owner that has signed, including this one
	Signers []common.Address
}

// ConfirmTransaction signs a pending transaction and posts the signature
type ConfirmTransaction struct {
	config    *config.RuntimeConfig
	services  TransactionServiceFactory
	signers   SignerProvider
	confirmer Confirmer
	progress  ProgressSink
}

// NewConfirmTransaction creates a new ConfirmTransaction use case
func NewConfirmTransaction(
	cfg *config.RuntimeConfig,
	services TransactionServiceFactory,
	signers SignerProvider,
	confirmer Confirmer,
	progress ProgressSink,
) *ConfirmTransaction {
	return &ConfirmTransaction{
		config:    cfg,
		services:  services,
		signers:   signers,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *ConfirmTransaction) Run(ctx context.Context, params ConfirmTransactionParams) (*ConfirmTransactionResult, error) {
	net, service, err := serviceFor(uc.config, uc.services)
	if err != nil {
		return nil, err
	}
	signer, err := uc.signers.Signer()
	if err != nil {
		return nil, err
	}

	type fetched struct {
		tx     *safe.SafeTx
		txHash *common.Hash
	}
	got, err := withSpinner(ctx, uc.progress, "confirm", "Fetching transaction...", func() (fetched, error) {
		tx, txHash, err := service.GetSafeTransaction(ctx, params.SafeTxHash)
		return fetched{tx, txHash}, err
	})
	if err != nil {
		return nil, err
	}
	if got.txHash != nil {
		return nil, fmt.Errorf("%w in %s", ErrAlreadyExecuted, got.txHash.Hex())
	}

	// The hash is recomputed locally so a tampered record cannot be signed
	tx := got.tx
	if computed := tx.SafeTxHash(); computed != params.SafeTxHash {
		return nil, fmt.Errorf("safe tx hash mismatch: service returned a transaction hashing to %s", computed.Hex())
	}

	prompt := fmt.Sprintf("Sign transaction %s with %s", params.SafeTxHash.Hex(), signer.Address().Hex())
	if err := confirm(ctx, uc.confirmer, uc.config.Interactive(), prompt); err != nil {
		return nil, err
	}

	signature, err := tx.Sign(signer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	_, err = withSpinner(ctx, uc.progress, "confirm", "Posting signature...", func() (struct{}, error) {
		return struct{}{}, service.PostSignatures(ctx, params.SafeTxHash, signature)
	})
	if err != nil {
		return nil, err
	}

	signers, err := tx.SortedSigners()
	if err != nil {
		return nil, fmt.Errorf("failed to recover signers: %w", err)
	}

	return &ConfirmTransactionResult{
		Network:    net,
		SafeTxHash: params.SafeTxHash,
		Signer:     signer.Address(),
		Signature:  signature,
		Signers:    signers,
	}, nil
}
