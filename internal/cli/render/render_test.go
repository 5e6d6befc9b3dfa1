package render

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/blockscout"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
	"gopkg.in/yaml.v3"
)

var (
	safeAddress     = common.HexToAddress("0x5afe5afe5afe5afe5afe5afe5afe5afe5afe5afe")
	delegateAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")
	signerAddress   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func init() {
	color.NoColor = true
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int
		want     string
	}{
		{"1500000000000000000", 18, "1.5"},
		{"1000000000000000000", 18, "1"},
		{"1", 18, "0.000000000000000001"},
		{"0", 18, "0"},
		{"123456", 6, "0.123456"},
		{"42", 0, "42"},
		{"-2500", 3, "-2.5"},
		{"not-a-number", 18, "not-a-number"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUnits(tt.amount, tt.decimals))
		})
	}
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "0xabcd…6789", shorten("0xabcdef0123456789abcdef0123456789"))
	assert.Equal(t, "0x1234", shorten("0x1234"))
}

func TestBalancesRenderer(t *testing.T) {
	result := &usecase.BalancesResult{
		Network: network.Gnosis,
		Safe:    safeAddress,
		Balances: []safe.Balance{
			{Balance: "2500000000000000000"},
			{
				TokenAddress: lo.ToPtr("0xdddddddddddddddddddddddddddddddddddddddd"),
				Token:        &safe.Token{Symbol: "USDC", Decimals: 6},
				Balance:      "1000000",
			},
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSafeRenderer(&buf, config.OutputTable).RenderBalances(result))
		out := buf.String()
		assert.Contains(t, out, "ETH")
		assert.Contains(t, out, "2.5")
		assert.Contains(t, out, "USDC")
		assert.Contains(t, out, "0xdddddddddddddddddddddddddddddddddddddddd")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSafeRenderer(&buf, config.OutputJSON).RenderBalances(result))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "ETH", got[0]["token"])
		assert.Equal(t, "2.5", got[0]["amount"])
		assert.NotContains(t, got[0], "address")
		assert.Equal(t, "1", got[1]["amount"])
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSafeRenderer(&buf, config.OutputTable).RenderBalances(&usecase.BalancesResult{
			Network: network.Gnosis,
			Safe:    safeAddress,
		}))
		assert.Contains(t, buf.String(), "No balances for "+safeAddress.Hex()+" on gnosis")
	})
}

func TestTransactionsRenderer(t *testing.T) {
	result := &usecase.TransactionsResult{
		Network: network.Gnosis,
		Safe:    safeAddress,
		Transactions: []safe.MultisigTransaction{
			{
				SafeTxHash:            "0xaaaa000000000000000000000000000000000000000000000000000000000001",
				To:                    delegateAddress.Hex(),
				Value:                 "0",
				Nonce:                 "7",
				DataDecoded:           map[string]any{"method": "transfer"},
				ConfirmationsRequired: lo.ToPtr(2),
				Confirmations:         []safe.Confirmation{{Owner: signerAddress.Hex()}},
			},
			{
				SafeTxHash:      "0xaaaa000000000000000000000000000000000000000000000000000000000002",
				To:              delegateAddress.Hex(),
				Value:           "1",
				Nonce:           "6",
				IsExecuted:      true,
				TransactionHash: lo.ToPtr("0xbbbb"),
			},
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSafeRenderer(&buf, config.OutputTable).RenderTransactions(result))
		out := buf.String()
		assert.Contains(t, out, "transfer")
		assert.Contains(t, out, "1/2")
		assert.Contains(t, out, "pending")
		assert.Contains(t, out, "executed")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSafeRenderer(&buf, config.OutputYAML).RenderTransactions(result))

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "transfer", got[0]["method"])
		assert.Equal(t, false, got[0]["executed"])
		assert.Equal(t, "0xbbbb", got[1]["transactionHash"])
	})
}

func TestTransactionRenderer(t *testing.T) {
	txHash := common.HexToHash("0xbeef")
	details := &usecase.TransactionDetails{
		Network: network.Gnosis,
		SafeTx: &safe.SafeTx{
			ChainID:   big.NewInt(100),
			Safe:      safeAddress,
			To:        delegateAddress,
			Value:     big.NewInt(5),
			Data:      []byte{0xa9, 0x05, 0x9c, 0xbb},
			Operation: safe.DelegateCall,
			SafeTxGas: big.NewInt(0),
			BaseGas:   big.NewInt(0),
			GasPrice:  big.NewInt(0),
			Nonce:     big.NewInt(3),
		},
		TxHash:  &txHash,
		Signers: []common.Address{signerAddress},
		Decoded: "transfer: to=0x1",
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSafeRenderer(&buf, config.OutputTable).RenderTransaction(details))
		out := buf.String()
		assert.Contains(t, out, details.SafeTx.SafeTxHash().Hex())
		assert.Contains(t, out, "DELEGATE_CALL")
		assert.Contains(t, out, "executed")
		assert.Contains(t, out, "0xa9059cbb")
		assert.Contains(t, out, "transfer: to=0x1")
		assert.Contains(t, out, "Signers (1)")
		assert.Contains(t, out, signerAddress.Hex())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSafeRenderer(&buf, config.OutputJSON).RenderTransaction(details))

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "gnosis", got["network"])
		assert.Equal(t, "3", got["nonce"])
		assert.Equal(t, true, got["executed"])
		assert.Equal(t, txHash.Hex(), got["transactionHash"])
		assert.Equal(t, []any{signerAddress.Hex()}, got["signers"])
	})
}

func TestDelegatesRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewSafeRenderer(&buf, config.OutputTable).RenderDelegates(&usecase.DelegatesResult{
		Network: network.Gnosis,
		Safe:    safeAddress,
		Delegates: []safe.Delegate{
			{Delegate: delegateAddress.Hex(), Delegator: signerAddress.Hex(), Label: "ops"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), delegateAddress.Hex())
	assert.Contains(t, buf.String(), "ops")
}

func TestDelegateChangeRenderer(t *testing.T) {
	result := &usecase.DelegateResult{
		Network:  network.Gnosis,
		Safe:     safeAddress,
		Delegate: delegateAddress,
		Signer:   signerAddress,
		Label:    "ops",
	}

	var buf bytes.Buffer
	require.NoError(t, NewSafeRenderer(&buf, config.OutputTable).RenderDelegateChange("added", result))
	assert.Contains(t, buf.String(), "Added delegate "+delegateAddress.Hex()+" to "+safeAddress.Hex()+" (ops)")

	buf.Reset()
	result.Label = ""
	require.NoError(t, NewSafeRenderer(&buf, config.OutputTable).RenderDelegateChange("removed", result))
	assert.Contains(t, buf.String(), "Removed delegate "+delegateAddress.Hex()+" from "+safeAddress.Hex())
}

func TestProposalRenderer(t *testing.T) {
	t.Run("unsigned", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewSafeRenderer(&buf, config.OutputTable).RenderProposal(&usecase.ProposeTransactionResult{
			Network:    network.Gnosis,
			SafeTxHash: common.HexToHash("0x01"),
			Nonce:      big.NewInt(4),
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "with nonce 4")
		assert.Contains(t, buf.String(), "Proposed without signature")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewSafeRenderer(&buf, config.OutputJSON).RenderProposal(&usecase.ProposeTransactionResult{
			Network:    network.Gnosis,
			SafeTxHash: common.HexToHash("0x01"),
			Nonce:      big.NewInt(4),
			Proposer:   &signerAddress,
		})
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "4", got["nonce"])
		assert.Equal(t, signerAddress.Hex(), got["proposer"])
	})
}

func TestConfirmationRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewSafeRenderer(&buf, config.OutputJSON).RenderConfirmation(&usecase.ConfirmTransactionResult{
		Network:    network.Gnosis,
		SafeTxHash: common.HexToHash("0x01"),
		Signer:     signerAddress,
		Signature:  []byte{0x01, 0x02},
		Signers:    []common.Address{signerAddress},
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "0x0102", got["signature"])
	assert.Equal(t, signerAddress.Hex(), got["signer"])
}

func TestMetadataRenderer(t *testing.T) {
	rawABI := json.RawMessage(`[{"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"}]`)

	t.Run("not verified", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewMetadataRenderer(&buf, config.OutputTable).Render(&usecase.ContractMetadataResult{
			Network: network.Gnosis,
			Address: safeAddress,
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No verified contract found")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewMetadataRenderer(&buf, config.OutputJSON).Render(&usecase.ContractMetadataResult{
			Network:  network.Gnosis,
			Address:  safeAddress,
			Metadata: &blockscout.ContractMetadata{Name: "Ownable", RawABI: rawABI},
		})
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, true, got["verified"])
		assert.Equal(t, "Ownable", got["name"])
		assert.Equal(t, false, got["partialMatch"])
		require.IsType(t, []any{}, got["abi"])
		assert.Len(t, got["abi"], 1)
	})

	t.Run("table lists functions", func(t *testing.T) {
		var buf bytes.Buffer
		metadata := &blockscout.ContractMetadata{Name: "Ownable", RawABI: rawABI}
		require.NoError(t, json.Unmarshal(rawABI, &metadata.ABI))

		err := NewMetadataRenderer(&buf, config.OutputTable).Render(&usecase.ContractMetadataResult{
			Network:  network.Gnosis,
			Address:  safeAddress,
			Metadata: metadata,
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Ownable")
		assert.Contains(t, buf.String(), "owner()")
		assert.Contains(t, buf.String(), "full")
	})
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Name: "gnosis", ChainID: 100, TransactionServiceURL: "https://tx", BlockscoutURL: "https://bs/graphiql"},
			{Name: "mainnet", ChainID: 1, TransactionServiceURL: "https://tx-main"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&buf, config.OutputTable).Render(result))
	assert.Contains(t, buf.String(), "gnosis")
	assert.Contains(t, buf.String(), "https://bs/graphiql")

	buf.Reset()
	require.NoError(t, NewNetworksRenderer(&buf, config.OutputJSON).Render(result))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, float64(1), got[1]["chainId"])
	assert.NotContains(t, got[1], "blockscoutUrl")
}
