package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/safe-eth/internal/adapters/blockscout"
	"github.com/trebuchet-org/safe-eth/internal/adapters/interactive"
	"github.com/trebuchet-org/safe-eth/internal/adapters/network"
	"github.com/trebuchet-org/safe-eth/internal/adapters/progress"
	"github.com/trebuchet-org/safe-eth/internal/adapters/safe"
	"github.com/trebuchet-org/safe-eth/internal/adapters/signer"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
)

// ClientSet provides the HTTP API client factories
var ClientSet = wire.NewSet(
	safe.NewClientFactory,
	wire.Bind(new(usecase.TransactionServiceFactory), new(*safe.ClientFactory)),

	blockscout.NewExplorerFactory,
	wire.Bind(new(usecase.ExplorerFactory), new(*blockscout.ExplorerFactory)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.EndpointResolver), new(*network.Resolver)),

	signer.NewKeyProvider,
	wire.Bind(new(usecase.SignerProvider), new(*signer.KeyProvider)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),

	progress.NewSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ClientSet,
	ConfigSet,
	InteractiveSet,
)
