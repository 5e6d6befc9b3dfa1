package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// SafeParams selects the Safe a listing runs against
type SafeParams struct {
	Safe common.Address
}

// BalancesResult contains the balances of a Safe
type BalancesResult struct {
	Network  network.Network
	Safe     common.Address
	Balances []safe.Balance
}

// TransactionsResult contains the multisig transactions of a Safe
type TransactionsResult struct {
	Network      network.Network
	Safe         common.Address
	Transactions []safe.MultisigTransaction
}

// DelegatesResult contains the delegates of a Safe
type DelegatesResult struct {
	Network   network.Network
	Safe      common.Address
	Delegates []safe.Delegate
}

// serviceFor resolves the configured network and builds its client
func serviceFor(cfg *config.RuntimeConfig, services TransactionServiceFactory) (network.Network, TransactionService, error) {
	net, err := cfg.RequireNetwork()
	if err != nil {
		return 0, nil, err
	}
	service, err := services.TransactionService(net)
	if err != nil {
		return 0, nil, err
	}
	return net, service, nil
}

// ListBalances is a use case for listing the token balances of a Safe
type ListBalances struct {
	config   *config.RuntimeConfig
	services TransactionServiceFactory
	progress ProgressSink
}

// NewListBalances creates a new ListBalances use case
func NewListBalances(cfg *config.RuntimeConfig, services TransactionServiceFactory, progress ProgressSink) *ListBalances {
	return &ListBalances{config: cfg, services: services, progress: progress}
}

// Run executes the use case
func (uc *ListBalances) Run(ctx context.Context, params SafeParams) (*BalancesResult, error) {
	net, service, err := serviceFor(uc.config, uc.services)
	if err != nil {
		return nil, err
	}

	balances, err := withSpinner(ctx, uc.progress, "balances", "Fetching balances...", func() ([]safe.Balance, error) {
		return service.GetBalances(ctx, params.Safe)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	return &BalancesResult{Network: net, Safe: params.Safe, Balances: balances}, nil
}

// ListTransactions is a use case for listing the multisig transactions of a Safe
type ListTransactions struct {
	config   *config.RuntimeConfig
	services TransactionServiceFactory
	progress ProgressSink
}

// NewListTransactions creates a new ListTransactions use case
func NewListTransactions(cfg *config.RuntimeConfig, services TransactionServiceFactory, progress ProgressSink) *ListTransactions {
	return &ListTransactions{config: cfg, services: services, progress: progress}
}

// Run executes the use case
func (uc *ListTransactions) Run(ctx context.Context, params SafeParams) (*TransactionsResult, error) {
	net, service, err := serviceFor(uc.config, uc.services)
	if err != nil {
		return nil, err
	}

	txs, err := withSpinner(ctx, uc.progress, "transactions", "Fetching transactions...", func() ([]safe.MultisigTransaction, error) {
		return service.GetTransactions(ctx, params.Safe)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &TransactionsResult{Network: net, Safe: params.Safe, Transactions: txs}, nil
}

// ListDelegates is a use case for listing the delegates of a Safe
type ListDelegates struct {
	config   *config.RuntimeConfig
	services TransactionServiceFactory
	progress ProgressSink
}

// NewListDelegates creates a new ListDelegates use case
func NewListDelegates(cfg *config.RuntimeConfig, services TransactionServiceFactory, progress ProgressSink) *ListDelegates {
	return &ListDelegates{config: cfg, services: services, progress: progress}
}

// Run executes the use case
func (uc *ListDelegates) Run(ctx context.Context, params SafeParams) (*DelegatesResult, error) {
	net, service, err := serviceFor(uc.config, uc.services)
	if err != nil {
		return nil, err
	}

	delegates, err := withSpinner(ctx, uc.progress, "delegates", "Fetching delegates...", func() ([]safe.Delegate, error) {
		return service.GetDelegates(ctx, params.Safe)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list delegates: %w", err)
	}

	return &DelegatesResult{Network: net, Safe: params.Safe, Delegates: delegates}, nil
}
