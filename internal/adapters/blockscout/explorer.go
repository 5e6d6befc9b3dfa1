package blockscout

import (
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// ExplorerFactory builds Blockscout clients from the runtime configuration
type ExplorerFactory struct {
	cfg    *config.RuntimeConfig
	logger *slog.Logger
}

// NewExplorerFactory creates a new factory
func NewExplorerFactory(cfg *config.RuntimeConfig, logger *slog.Logger) *ExplorerFactory {
	return &ExplorerFactory{cfg: cfg, logger: logger}
}

// Explorer creates a client for the explorer of net
func (f *ExplorerFactory) Explorer(net network.Network) (usecase.ExplorerClient, error) {
	opts := []blockscout.Option{
		blockscout.WithLogger(f.logger.With("network", net.String())),
	}
	if url := f.cfg.BlockscoutURLFor(net); url != "" {
		opts = append(opts, blockscout.WithBaseURL(url))
	}

	client, err := blockscout.NewClient(net, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create explorer client for chain %d: %w", net.ChainID(), err)
	}
	return client, nil
}

var _ usecase.ExplorerFactory = (*ExplorerFactory)(nil)
