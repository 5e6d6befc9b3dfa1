package safe

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// Origin tags every transaction proposed by this client
const Origin = "Safe-CLI"

// PlaceholderSender is reported as sender when a proposed transaction has no signers
var PlaceholderSender = common.HexToAddress("0x0000000000000000000000000000000000000002")

// TransactionServiceAPI is a client for the Safe Transaction Service
type TransactionServiceAPI struct {
	*BaseAPI
}

// NewTransactionServiceAPI creates a client for the transaction service of a network
func NewTransactionServiceAPI(net network.Network, opts ...Option) (*TransactionServiceAPI, error) {
	base, err := newBaseAPI(net, TransactionServiceURLs, opts...)
	if err != nil {
		return nil, err
	}
	return &TransactionServiceAPI{BaseAPI: base}, nil
}

// page is the envelope of paginated list endpoints
type page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p page[T]) items() []T {
	if p.Results == nil {
		return []T{}
	}
	return p.Results
}

// GetBalances returns the token balances held by a Safe
func (c *TransactionServiceAPI) GetBalances(ctx context.Context, safeAddress common.Address) ([]Balance, error) {
	var balances []Balance
	path := fmt.Sprintf("/api/v1/safes/%s/balances/", safeAddress.Hex())
	if err := c.getRequest(ctx, "Cannot get balances", path, &balances); err != nil {
		return nil, err
	}
	if balances == nil {
		balances = []Balance{}
	}
	return balances, nil
}

// GetTransactions returns the first page of multisig transactions of a Safe
func (c *TransactionServiceAPI) GetTransactions(ctx context.Context, safeAddress common.Address) ([]MultisigTransaction, error) {
	var result page[MultisigTransaction]
	path := fmt.Sprintf("/api/v1/safes/%s/multisig-transactions/", safeAddress.Hex())
	if err := c.getRequest(ctx, "Cannot get transactions", path, &result); err != nil {
		return nil, err
	}
	return result.items(), nil
}

// GetDelegates returns the delegates registered for a Safe
func (c *TransactionServiceAPI) GetDelegates(ctx context.Context, safeAddress common.Address) ([]Delegate, error) {
	var result page[Delegate]
	path := fmt.Sprintf("/api/v1/safes/%s/delegates/", safeAddress.Hex())
	if err := c.getRequest(ctx, "Cannot get delegates", path, &result); err != nil {
		return nil, err
	}
	return result.items(), nil
}

// GetMultisigTransaction returns the raw transaction record stored by the service
func (c *TransactionServiceAPI) GetMultisigTransaction(ctx context.Context, safeTxHash common.Hash) (*MultisigTransaction, error) {
	var tx MultisigTransaction
	op := fmt.Sprintf("Cannot get transaction with safe-tx-hash=%s", safeTxHash.Hex())
	path := fmt.Sprintf("/api/v1/multisig-transactions/%s/", safeTxHash.Hex())
	if err := c.getRequest(ctx, op, path, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetSafeTransaction rebuilds an executable SafeTx from the service record.
// The second value is the Ethereum transaction hash when it was already executed.
func (c *TransactionServiceAPI) GetSafeTransaction(ctx context.Context, safeTxHash common.Hash) (*SafeTx, *common.Hash, error) {
	raw, err := c.GetMultisigTransaction(ctx, safeTxHash)
	if err != nil {
		return nil, nil, err
	}

	safeTx, err := raw.ToSafeTx(new(big.Int).SetUint64(c.network.ChainID()))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid transaction %s: %w", safeTxHash.Hex(), err)
	}
	return safeTx, safeTx.TxHash, nil
}

// PostSignatures adds a confirmation to an existing transaction
func (c *TransactionServiceAPI) PostSignatures(ctx context.Context, safeTxHash common.Hash, signatures []byte) error {
	op := fmt.Sprintf("Cannot post signatures for tx with safe-tx-hash=%s", safeTxHash.Hex())
	path := fmt.Sprintf("/api/v1/multisig-transactions/%s/confirmations/", safeTxHash.Hex())
	payload := map[string]string{"signature": hexutil.Encode(signatures)}
	return c.postRequest(ctx, op, path, payload)
}

// AddDelegate registers delegate for safeAddress, signed by one of its owners
func (c *TransactionServiceAPI) AddDelegate(ctx context.Context, safeAddress, delegate common.Address, label string, signer Signer) error {
	signature, err := c.signDelegate(delegate, signer)
	if err != nil {
		return err
	}

	payload := map[string]string{
		"safe":      safeAddress.Hex(),
		"delegate":  delegate.Hex(),
		"signature": hexutil.Encode(signature),
		"label":     label,
	}
	path := fmt.Sprintf("/api/v1/safes/%s/delegates/", safeAddress.Hex())
	return c.postRequest(ctx, "Cannot add delegate", path, payload)
}

// RemoveDelegate deregisters delegate from safeAddress
func (c *TransactionServiceAPI) RemoveDelegate(ctx context.Context, safeAddress, delegate common.Address, signer Signer) error {
	signature, err := c.signDelegate(delegate, signer)
	if err != nil {
		return err
	}

	payload := map[string]string{"signature": hexutil.Encode(signature)}
	path := fmt.Sprintf("/api/v1/safes/%s/delegates/%s/", safeAddress.Hex(), delegate.Hex())
	return c.deleteRequest(ctx, "Cannot remove delegate", path, payload)
}

func (c *TransactionServiceAPI) signDelegate(delegate common.Address, signer Signer) ([]byte, error) {
	hash := CreateDelegateMessageHash(delegate.Hex(), c.now())
	signature, err := signer.SignHash(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to sign delegate hash: %w", err)
	}
	return signature, nil
}

// proposal is the body accepted by the multisig-transactions endpoint
type proposal struct {
	To                      string   `json:"to"`
	Value                   *big.Int `json:"value"`
	Data                    *string  `json:"data"`
	Operation               uint8    `json:"operation"`
	GasToken                string   `json:"gasToken"`
	SafeTxGas               *big.Int `json:"safeTxGas"`
	BaseGas                 *big.Int `json:"baseGas"`
	GasPrice                *big.Int `json:"gasPrice"`
	RefundReceiver          string   `json:"refundReceiver"`
	Nonce                   *big.Int `json:"nonce"`
	ContractTransactionHash string   `json:"contractTransactionHash"`
	Sender                  string   `json:"sender"`
	Signature               *string  `json:"signature"`
	Origin                  string   `json:"origin"`
}

// PostTransaction proposes tx to the service so other owners can co-sign it
func (c *TransactionServiceAPI) PostTransaction(ctx context.Context, tx *SafeTx) error {
	sender := PlaceholderSender
	signers, err := tx.SortedSigners()
	if err != nil {
		return fmt.Errorf("failed to recover signers: %w", err)
	}
	if len(signers) > 0 {
		sender = signers[0]
	}

	body := proposal{
		To:                      tx.To.Hex(),
		Value:                   orZero(tx.Value),
		Data:                    optionalHex(tx.Data),
		Operation:               uint8(tx.Operation),
		GasToken:                tx.GasToken.Hex(),
		SafeTxGas:               orZero(tx.SafeTxGas),
		BaseGas:                 orZero(tx.BaseGas),
		GasPrice:                orZero(tx.GasPrice),
		RefundReceiver:          tx.RefundReceiver.Hex(),
		Nonce:                   orZero(tx.Nonce),
		ContractTransactionHash: tx.SafeTxHash().Hex(),
		Sender:                  sender.Hex(),
		Signature:               optionalHex(tx.Signatures),
		Origin:                  Origin,
	}

	path := fmt.Sprintf("/api/v1/safes/%s/multisig-transactions/", tx.Safe.Hex())
	return c.postRequest(ctx, "Error posting transaction", path, body)
}

func optionalHex(b []byte) *string {
	if len(b) == 0 {
		return nil
	}
	s := hexutil.Encode(b)
	return &s
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// parseBig accepts both decimal numbers and numeric strings, as the service
// has used both encodings across versions
func parseBig(field, s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %q", field, s)
	}
	return v, nil
}

// unixHourBucket returns the number of whole hours since the epoch
func unixHourBucket(now time.Time) int64 {
	return now.Unix() / 3600
}
