package safe

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MultisigTransaction represents a Safe multisig transaction
type MultisigTransaction struct {
	Safe                  string         `json:"safe"`
	To                    string         `json:"to"`
	Value                 json.Number    `json:"value"`
	Data                  *string        `json:"data"`
	Operation             json.Number    `json:"operation"`
	SafeTxGas             json.Number    `json:"safeTxGas"`
	BaseGas               json.Number    `json:"baseGas"`
	GasPrice              json.Number    `json:"gasPrice"`
	GasToken              string         `json:"gasToken"`
	RefundReceiver        string         `json:"refundReceiver"`
	Nonce                 json.Number    `json:"nonce"`
	ExecutionDate         *time.Time     `json:"executionDate"`
	SubmissionDate        *time.Time     `json:"submissionDate"`
	BlockNumber           *int64         `json:"blockNumber"`
	TransactionHash       *string        `json:"transactionHash"`
	SafeTxHash            string         `json:"safeTxHash"`
	Executor              *string        `json:"executor"`
	IsExecuted            bool           `json:"isExecuted"`
	IsSuccessful          *bool          `json:"isSuccessful"`
	Origin                *string        `json:"origin"`
	DataDecoded           map[string]any `json:"dataDecoded"`
	ConfirmationsRequired *int           `json:"confirmationsRequired"`
	Confirmations         []Confirmation `json:"confirmations"`
	Trusted               bool           `json:"trusted"`
	Signatures            *string        `json:"signatures"`
}

// Confirmation represents a transaction confirmation
type Confirmation struct {
	Owner           string     `json:"owner"`
	SubmissionDate  *time.Time `json:"submissionDate"`
	TransactionHash *string    `json:"transactionHash"`
	Signature       string     `json:"signature"`
	SignatureType   string     `json:"signatureType"`
}

// Signature types reported for confirmations
const (
	SignatureTypeEOA          = "EOA"
	SignatureTypeEthSign      = "ETH_SIGN"
	SignatureTypeApprovedHash = "APPROVED_HASH"
	SignatureTypeContract     = "CONTRACT_SIGNATURE"
)

// Delegate is an address allowed to propose transactions for a Safe
type Delegate struct {
	Safe      *string `json:"safe"`
	Delegate  string  `json:"delegate"`
	Delegator string  `json:"delegator"`
	Label     string  `json:"label"`
}

// Token describes an ERC20 token held by a Safe
type Token struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoUri"`
}

// Balance is one entry of a Safe's balances. TokenAddress and Token are nil for ether.
type Balance struct {
	TokenAddress *string `json:"tokenAddress"`
	Token        *Token  `json:"token"`
	Balance      string  `json:"balance"`
}

// ToSafeTx rebuilds the executable transaction, aggregating confirmations
// into signatures when the transaction was not executed yet
func (m *MultisigTransaction) ToSafeTx(chainID *big.Int) (*SafeTx, error) {
	value, err := parseBig("value", m.Value.String())
	if err != nil {
		return nil, err
	}
	operation, err := parseBig("operation", m.Operation.String())
	if err != nil {
		return nil, err
	}
	safeTxGas, err := parseBig("safeTxGas", m.SafeTxGas.String())
	if err != nil {
		return nil, err
	}
	baseGas, err := parseBig("baseGas", m.BaseGas.String())
	if err != nil {
		return nil, err
	}
	gasPrice, err := parseBig("gasPrice", m.GasPrice.String())
	if err != nil {
		return nil, err
	}
	nonce, err := parseBig("nonce", m.Nonce.String())
	if err != nil {
		return nil, err
	}

	data := []byte{}
	if m.Data != nil && *m.Data != "" {
		data = common.FromHex(*m.Data)
	}

	tx := &SafeTx{
		ChainID:        chainID,
		Safe:           common.HexToAddress(m.Safe),
		To:             common.HexToAddress(m.To),
		Value:          value,
		Data:           data,
		Operation:      Operation(operation.Uint64()),
		SafeTxGas:      safeTxGas,
		BaseGas:        baseGas,
		GasPrice:       gasPrice,
		GasToken:       common.HexToAddress(m.GasToken),
		RefundReceiver: common.HexToAddress(m.RefundReceiver),
		Nonce:          nonce,
		Signatures:     ParseSignatures(m),
	}

	if m.TransactionHash != nil && *m.TransactionHash != "" {
		txHash := common.HexToHash(*m.TransactionHash)
		tx.TxHash = &txHash
	}
	return tx, nil
}
