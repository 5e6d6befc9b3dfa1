package app

import (
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.NetworkSelector
	Progress usecase.ProgressSink

	// Use cases
	ShowContractMetadata *usecase.ShowContractMetadata
	ListBalances         *usecase.ListBalances
	ListTransactions     *usecase.ListTransactions
	ShowTransaction      *usecase.ShowTransaction
	ListDelegates        *usecase.ListDelegates
	ManageDelegates      *usecase.ManageDelegates
	ConfirmTransaction   *usecase.ConfirmTransaction
	ProposeTransaction   *usecase.ProposeTransaction
	ListNetworks         *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.NetworkSelector,
	progress usecase.ProgressSink,
	showContractMetadata *usecase.ShowContractMetadata,
	listBalances *usecase.ListBalances,
	listTransactions *usecase.ListTransactions,
	showTransaction *usecase.ShowTransaction,
	listDelegates *usecase.ListDelegates,
	manageDelegates *usecase.ManageDelegates,
	confirmTransaction *usecase.ConfirmTransaction,
	proposeTransaction *usecase.ProposeTransaction,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:               cfg,
		Selector:             selector,
		Progress:             progress,
		ShowContractMetadata: showContractMetadata,
		ListBalances:         listBalances,
		ListTransactions:     listTransactions,
		ShowTransaction:      showTransaction,
		ListDelegates:        listDelegates,
		ManageDelegates:      manageDelegates,
		ConfirmTransaction:   confirmTransaction,
		ProposeTransaction:   proposeTransaction,
		ListNetworks:         listNetworks,
	}, nil
}
