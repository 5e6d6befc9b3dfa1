package blockscout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

const erc20ABI = `[{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"type":"function"}]`

var contractAddress = common.HexToAddress("0x6810e776880C02933D47DB1b9fc05908e5386b96")

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		network network.Network
		wantErr bool
	}{
		{name: "Gnosis", network: network.Gnosis},
		{name: "Polygon", network: network.Polygon},
		{name: "Mainnet is not a blockscout network", network: network.Mainnet, wantErr: true},
		{name: "Unsupported chain", network: network.Network(999999), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.network)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, network.ErrNotSupported))
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, NetworkWithURL[tt.network], client.BaseURL())
		})
	}
}

func TestNewClientUnsupportedMakesNoRequest(t *testing.T) {
	calls := 0
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("unexpected request")
	})}

	_, err := NewClient(network.Network(424242), WithHTTPClient(client))
	require.Error(t, err)
	assert.Zero(t, calls)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(network.Gnosis, WithBaseURL(server.URL+"/"))
	require.NoError(t, err)
	return client
}

func TestGetContractMetadata(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/graphiql", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotQuery = body["query"]

		resp := map[string]any{
			"data": map[string]any{
				"address": map[string]any{
					"hash": contractAddress.Hex(),
					"smartContract": map[string]any{
						"name": "Token",
						"abi":  erc20ABI,
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	metadata, err := client.GetContractMetadata(context.Background(), contractAddress)
	require.NoError(t, err)
	require.NotNil(t, metadata)

	assert.Equal(t, `{address(hash: "0x6810e776880C02933D47DB1b9fc05908e5386b96") { hash, smartContract {name, abi} }}`, gotQuery)
	assert.Equal(t, "Token", metadata.Name)
	assert.False(t, metadata.PartialMatch)
	assert.Contains(t, metadata.ABI.Methods, "name")
	assert.JSONEq(t, erc20ABI, string(metadata.RawABI))
}

func TestGetContractMetadataNoMetadata(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http failure", status: http.StatusInternalServerError, body: `oops`},
		{name: "not found", status: http.StatusNotFound, body: `{}`},
		{name: "error key", status: http.StatusOK, body: `{"error": "something went wrong", "data": {"address": {"smartContract": {"name": "X", "abi": "[]"}}}}`},
		{name: "no data", status: http.StatusOK, body: `{}`},
		{name: "no address", status: http.StatusOK, body: `{"data": {"address": null}}`},
		{name: "not verified", status: http.StatusOK, body: `{"data": {"address": {"hash": "0x01", "smartContract": null}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			metadata, err := client.GetContractMetadata(context.Background(), contractAddress)
			require.NoError(t, err)
			assert.Nil(t, metadata)
		})
	}
}

func TestGetContractMetadataMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": `))
	})

	metadata, err := client.GetContractMetadata(context.Background(), contractAddress)
	assert.Error(t, err)
	assert.Nil(t, metadata)
}

func TestGetContractMetadataTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(network.Gnosis, WithBaseURL(server.URL))
	require.NoError(t, err)

	metadata, err := client.GetContractMetadata(context.Background(), contractAddress)
	assert.Error(t, err)
	assert.Nil(t, metadata)
}
