package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Service limits the listing to networks supported by one service,
	// safe.ServiceName or blockscout.ServiceName. Empty lists all.
	Service string
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the service endpoints available on a network
type NetworkStatus struct {
	Name                  string
	ChainID               uint64
	TransactionServiceURL string
	BlockscoutURL         string
}

// ListNetworks is a use case for listing supported networks
type ListNetworks struct {
	endpoints EndpointResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(endpoints EndpointResolver) *ListNetworks {
	return &ListNetworks{
		endpoints: endpoints,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	seen := make(map[network.Network]bool)
	if params.Service == "" || params.Service == safe.ServiceName {
		for n := range safe.TransactionServiceURLs {
			seen[n] = true
		}
	}
	if params.Service == "" || params.Service == blockscout.ServiceName {
		for n := range blockscout.NetworkWithURL {
			seen[n] = true
		}
	}

	networks := make([]network.Network, 0, len(seen))
	for n := range seen {
		networks = append(networks, n)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i] < networks[j] })

	statuses := make([]NetworkStatus, 0, len(networks))
	for _, n := range networks {
		statuses = append(statuses, NetworkStatus{
			Name:                  n.String(),
			ChainID:               n.ChainID(),
			TransactionServiceURL: uc.endpoints.TransactionServiceURL(n),
			BlockscoutURL:         uc.endpoints.BlockscoutURL(n),
		})
	}

	return &ListNetworksResult{
		Networks: statuses,
	}, nil
}
