package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// ShowContractMetadataParams contains parameters for looking up a contract
type ShowContractMetadataParams struct {
	Address common.Address
}

// ContractMetadataResult is the outcome of an explorer lookup.
// Metadata is nil when the explorer has no verified source for the address.
type ContractMetadataResult struct {
	Network  network.Network
	Address  common.Address
	Metadata *blockscout.ContractMetadata
}

// Found reports whether verified metadata was returned
func (r *ContractMetadataResult) Found() bool {
	return r.Metadata != nil
}

// ShowContractMetadata looks up the verified name and ABI of a contract
type ShowContractMetadata struct {
	config    *config.RuntimeConfig
	explorers ExplorerFactory
	progress  ProgressSink
}

// NewShowContractMetadata creates a new ShowContractMetadata use case
func NewShowContractMetadata(cfg *config.RuntimeConfig, explorers ExplorerFactory, progress ProgressSink) *ShowContractMetadata {
	return &ShowContractMetadata{
		config:    cfg,
		explorers: explorers,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *ShowContractMetadata) Run(ctx context.Context, params ShowContractMetadataParams) (*ContractMetadataResult, error) {
	net, err := uc.config.RequireNetwork()
	if err != nil {
		return nil, err
	}

	explorer, err := uc.explorers.Explorer(net)
	if err != nil {
		return nil, err
	}

	metadata, err := withSpinner(ctx, uc.progress, "metadata", "Querying explorer...", func() (*blockscout.ContractMetadata, error) {
		return explorer.GetContractMetadata(ctx, params.Address)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get contract metadata: %w", err)
	}

	return &ContractMetadataResult{
		Network:  net,
		Address:  params.Address,
		Metadata: metadata,
	}, nil
}
