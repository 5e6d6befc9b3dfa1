package usecase

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// Simple mock implementations for testing

type mockExplorer struct {
	getContractMetadataFunc func(context.Context, common.Address) (*blockscout.ContractMetadata, error)
}

func (m *mockExplorer) GetContractMetadata(ctx context.Context, address common.Address) (*blockscout.ContractMetadata, error) {
	if m.getContractMetadataFunc != nil {
		return m.getContractMetadataFunc(ctx, address)
	}
	return nil, nil
}

type mockExplorerFactory struct {
	explorer *mockExplorer
	err      error
	network  network.Network
}

func (m *mockExplorerFactory) Explorer(net network.Network) (ExplorerClient, error) {
	m.network = net
	if m.err != nil {
		return nil, m.err
	}
	return m.explorer, nil
}

type mockService struct {
	getBalancesFunc            func(context.Context, common.Address) ([]safe.Balance, error)
	getTransactionsFunc        func(context.Context, common.Address) ([]safe.MultisigTransaction, error)
	getDelegatesFunc           func(context.Context, common.Address) ([]safe.Delegate, error)
	getMultisigTransactionFunc func(context.Context, common.Hash) (*safe.MultisigTransaction, error)
	getSafeTransactionFunc     func(context.Context, common.Hash) (*safe.SafeTx, *common.Hash, error)
	postSignaturesFunc         func(context.Context, common.Hash, []byte) error
	addDelegateFunc            func(context.Context, common.Address, common.Address, string, safe.Signer) error
	removeDelegateFunc         func(context.Context, common.Address, common.Address, safe.Signer) error
	postTransactionFunc        func(context.Context, *safe.SafeTx) error
}

var errNotMocked = errors.New("not mocked")

func (m *mockService) GetBalances(ctx context.Context, safeAddress common.Address) ([]safe.Balance, error) {
	if m.getBalancesFunc != nil {
		return m.getBalancesFunc(ctx, safeAddress)
	}
	return nil, errNotMocked
}

func (m *mockService) GetTransactions(ctx context.Context, safeAddress common.Address) ([]safe.MultisigTransaction, error) {
	if m.getTransactionsFunc != nil {
		return m.getTransactionsFunc(ctx, safeAddress)
	}
	return nil, errNotMocked
}

func (m *mockService) GetDelegates(ctx context.Context, safeAddress common.Address) ([]safe.Delegate, error) {
	if m.getDelegatesFunc != nil {
		return m.getDelegatesFunc(ctx, safeAddress)
	}
	return nil, errNotMocked
}

func (m *mockService) GetMultisigTransaction(ctx context.Context, safeTxHash common.Hash) (*safe.MultisigTransaction, error) {
	if m.getMultisigTransactionFunc != nil {
		return m.getMultisigTransactionFunc(ctx, safeTxHash)
	}
	return nil, errNotMocked
}

func (m *mockService) GetSafeTransaction(ctx context.Context, safeTxHash common.Hash) (*safe.SafeTx, *common.Hash, error) {
	if m.getSafeTransactionFunc != nil {
		return m.getSafeTransactionFunc(ctx, safeTxHash)
	}
	return nil, nil, errNotMocked
}

func (m *mockService) PostSignatures(ctx context.Context, safeTxHash common.Hash, signatures []byte) error {
	if m.postSignaturesFunc != nil {
		return m.postSignaturesFunc(ctx, safeTxHash, signatures)
	}
	return errNotMocked
}

func (m *mockService) AddDelegate(ctx context.Context, safeAddress, delegate common.Address, label string, signer safe.Signer) error {
	if m.addDelegateFunc != nil {
		return m.addDelegateFunc(ctx, safeAddress, delegate, label, signer)
	}
	return errNotMocked
}

func (m *mockService) RemoveDelegate(ctx context.Context, safeAddress, delegate common.Address, signer safe.Signer) error {
	if m.removeDelegateFunc != nil {
		return m.removeDelegateFunc(ctx, safeAddress, delegate, signer)
	}
	return errNotMocked
}

func (m *mockService) PostTransaction(ctx context.Context, tx *safe.SafeTx) error {
	if m.postTransactionFunc != nil {
		return m.postTransactionFunc(ctx, tx)
	}
	return errNotMocked
}

type mockServiceFactory struct {
	service *mockService
	network network.Network
}

func (m *mockServiceFactory) TransactionService(net network.Network) (TransactionService, error) {
	m.network = net
	if _, ok := safe.TransactionServiceURLs[net]; !ok {
		return nil, &network.NotSupportedError{Network: net, Service: safe.ServiceName}
	}
	return m.service, nil
}

type mockSignerProvider struct {
	signer safe.Signer
}

func (m *mockSignerProvider) Signer() (safe.Signer, error) {
	if m.signer == nil {
		return nil, ErrNoSigner
	}
	return m.signer, nil
}

type mockConfirmer struct {
	answer  bool
	prompts []string
}

func (m *mockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	m.prompts = append(m.prompts, prompt)
	return m.answer, nil
}

type recordingProgress struct {
	events []ProgressEvent
	infos  []string
	errors []string
}

func (r *recordingProgress) OnProgress(ctx context.Context, event ProgressEvent) {
	r.events = append(r.events, event)
}

func (r *recordingProgress) Info(message string) { r.infos = append(r.infos, message) }

func (r *recordingProgress) Error(message string) { r.errors = append(r.errors, message) }

type staticEndpoints struct{}

func (staticEndpoints) TransactionServiceURL(net network.Network) string {
	return safe.TransactionServiceURLs[net]
}

func (staticEndpoints) BlockscoutURL(net network.Network) string {
	return blockscout.NetworkWithURL[net]
}
