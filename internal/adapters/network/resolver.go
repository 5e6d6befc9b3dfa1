package network

import (
	"strings"

	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// Resolver reports the effective service endpoints per network, applying
// configured overrides on top of the built-in tables
type Resolver struct {
	cfg *config.RuntimeConfig
}

// NewResolver creates a new endpoint resolver
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// TransactionServiceURL returns the transaction service base URL for net, or ""
func (r *Resolver) TransactionServiceURL(net network.Network) string {
	if url := r.cfg.TransactionServiceURLFor(net); url != "" {
		return url
	}
	return safe.TransactionServiceURLs[net]
}

// BlockscoutURL returns the GraphQL endpoint of the explorer for net, or ""
func (r *Resolver) BlockscoutURL(net network.Network) string {
	url := r.cfg.BlockscoutURLFor(net)
	if url == "" {
		url = blockscout.NetworkWithURL[net]
	}
	if url == "" {
		return ""
	}
	return strings.TrimSuffix(url, "/") + "/graphiql"
}

var _ usecase.EndpointResolver = (*Resolver)(nil)
