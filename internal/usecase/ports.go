package usecase

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// ErrNoSigner is returned when an operation needs a key but none is configured
var ErrNoSigner = errors.New("no signer configured, use --private-key or SAFE_PRIVATE_KEY")

// ErrCancelled is returned when the user declines a confirmation prompt
var ErrCancelled = errors.New("operation cancelled")

// ExplorerClient fetches verified contract metadata from a block explorer
type ExplorerClient interface {
	GetContractMetadata(ctx context.Context, address common.Address) (*blockscout.ContractMetadata, error)
}

// ExplorerFactory builds an explorer client for a network
type ExplorerFactory interface {
	Explorer(net network.Network) (ExplorerClient, error)
}

// TransactionService talks to the Safe Transaction Service of one network
type TransactionService interface {
	GetBalances(ctx context.Context, safeAddress common.Address) ([]safe.Balance, error)
	GetTransactions(ctx context.Context, safeAddress common.Address) ([]safe.MultisigTransaction, error)
	GetDelegates(ctx context.Context, safeAddress common.Address) ([]safe.Delegate, error)
	GetMultisigTransaction(ctx context.Context, safeTxHash common.Hash) (*safe.MultisigTransaction, error)
	GetSafeTransaction(ctx context.Context, safeTxHash common.Hash) (*safe.SafeTx, *common.Hash, error)
	PostSignatures(ctx context.Context, safeTxHash common.Hash, signatures []byte) error
	AddDelegate(ctx context.Context, safeAddress, delegate common.Address, label string, signer safe.Signer) error
	RemoveDelegate(ctx context.Context, safeAddress, delegate common.Address, signer safe.Signer) error
	PostTransaction(ctx context.Context, tx *safe.SafeTx) error
}

// TransactionServiceFactory builds a transaction service client for a network
type TransactionServiceFactory interface {
	TransactionService(net network.Network) (TransactionService, error)
}

// SignerProvider returns the signer configured for write operations
type SignerProvider interface {
	Signer() (safe.Signer, error)
}

// Confirmer asks the user before a write operation is sent
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// NetworkSelector lets the user pick a network when none was configured
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []network.Network, prompt string) (network.Network, error)
}

// EndpointResolver reports which service URL will be used for a network,
// including configured overrides
type EndpointResolver interface {
	TransactionServiceURL(net network.Network) string
	BlockscoutURL(net network.Network) string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// withSpinner reports stage as running while fn executes
func withSpinner[T any](ctx context.Context, sink ProgressSink, stage, message string, fn func() (T, error)) (T, error) {
	sink.OnProgress(ctx, ProgressEvent{Stage: stage, Message: message, Spinner: true})
	defer sink.OnProgress(ctx, ProgressEvent{Stage: stage})
	return fn()
}

// confirm asks before a write unless prompts are disabled
func confirm(ctx context.Context, confirmer Confirmer, interactive bool, prompt string) error {
	if !interactive || confirmer == nil {
		return nil
	}
	ok, err := confirmer.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}
