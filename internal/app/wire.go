//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/safe-eth/internal/adapters"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/logging"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewShowContractMetadata,
		usecase.NewListBalances,
		usecase.NewListTransactions,
		usecase.NewShowTransaction,
		usecase.NewListDelegates,
		usecase.NewManageDelegates,
		usecase.NewConfirmTransaction,
		usecase.NewProposeTransaction,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
