package safe

import (
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// ClientFactory builds transaction service clients from the runtime configuration
type ClientFactory struct {
	cfg    *config.RuntimeConfig
	logger *slog.Logger
}

// NewClientFactory creates a new factory
func NewClientFactory(cfg *config.RuntimeConfig, logger *slog.Logger) *ClientFactory {
	return &ClientFactory{cfg: cfg, logger: logger}
}

// Options returns the client options derived from configuration for net
func (f *ClientFactory) Options(net network.Network) []safe.Option {
	opts := []safe.Option{
		safe.WithLogger(f.logger.With("network", net.String())),
		safe.WithRateLimit(f.cfg.RateLimit),
	}
	if f.cfg.Timeout > 0 {
		opts = append(opts, safe.WithTimeout(f.cfg.Timeout))
	}
	if url := f.cfg.TransactionServiceURLFor(net); url != "" {
		opts = append(opts, safe.WithBaseURL(url))
	}
	return opts
}

// TransactionService creates a client for the transaction service of net
func (f *ClientFactory) TransactionService(net network.Network) (usecase.TransactionService, error) {
	client, err := safe.NewTransactionServiceAPI(net, f.Options(net)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Safe client for chain %d: %w", net.ChainID(), err)
	}
	return client, nil
}

var _ usecase.TransactionServiceFactory = (*ClientFactory)(nil)
