package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// DelegateParams identifies a delegate of a Safe
type DelegateParams struct {
	Safe     common.Address
	Delegate common.Address
	Label    string // only used when adding
}

// DelegateResult describes a delegate change that was accepted by the service
type DelegateResult struct {
	Network  network.Network
	Safe     common.Address
	Delegate common.Address
	Signer   common.Address
	Label    string
}

// ManageDelegates adds and removes delegates of a Safe, signing with the
// configured owner key
type ManageDelegates struct {
	config    *config.RuntimeConfig
	services  TransactionServiceFactory
	signers   SignerProvider
	confirmer Confirmer
	progress  ProgressSink
}

// NewManageDelegates creates a new ManageDelegates use case
func NewManageDelegates(
	cfg *config.RuntimeConfig,
	services TransactionServiceFactory,
	signers SignerProvider,
	confirmer Confirmer,
	progress ProgressSink,
) *ManageDelegates {
	return &ManageDelegates{
		config:    cfg,
		services:  services,
		signers:   signers,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Add registers params.Delegate as a delegate of params.Safe
func (uc *ManageDelegates) Add(ctx context.Context, params DelegateParams) (*DelegateResult, error) {
	net, service, err := serviceFor(uc.config, uc.services)
	if err != nil {
		return nil, err
	}
	signer, err := uc.signers.Signer()
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Add %s as delegate of %s on %s", params.Delegate.Hex(), params.Safe.Hex(), net)
	if err := confirm(ctx, uc.confirmer, uc.config.Interactive(), prompt); err != nil {
		return nil, err
	}

	_, err = withSpinner(ctx, uc.progress, "delegate", "Adding delegate...", func() (struct{}, error) {
		return struct{}{}, service.AddDelegate(ctx, params.Safe, params.Delegate, params.Label, signer)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add delegate: %w", err)
	}

	return &DelegateResult{
		Network:  net,
		Safe:     params.Safe,
		Delegate: params.Delegate,
		Signer:   signer.Address(),
		Label:    params.Label,
	}, nil
}

// Remove deregisters params.Delegate from params.Safe
func (uc *ManageDelegates) Remove(ctx context.Context, params DelegateParams) (*DelegateResult, error) {
	net, service, err := serviceFor(uc.config, uc.services)
	if err != nil {
		return nil, err
	}
	signer, err := uc.signers.Signer()
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Remove delegate %s from %s on %s", params.Delegate.Hex(), params.Safe.Hex(), net)
	if err := confirm(ctx, uc.confirmer, uc.config.Interactive(), prompt); err != nil {
		return nil, err
	}

	_, err = withSpinner(ctx, uc.progress, "delegate", "Removing delegate...", func() (struct{}, error) {
		return struct{}{}, service.RemoveDelegate(ctx, params.Safe, params.Delegate, signer)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove delegate: %w", err)
	}

	return &DelegateResult{
		Network:  net,
		Safe:     params.Safe,
		Delegate: params.Delegate,
		Signer:   signer.Address(),
	}, nil
}
