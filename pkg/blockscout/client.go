package blockscout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// ServiceName identifies this client in configuration errors
const ServiceName = "blockscout"

// RequestTimeout bounds every GraphQL request
const RequestTimeout = 10 * time.Second

// NetworkWithURL contains the Blockscout explorer URL for each supported network
var NetworkWithURL = map[network.Network]string{
	network.Gnosis:          "https://blockscout.com/poa/xdai/",
	network.Polygon:         "https://polygon-explorer-mainnet.chainstacklabs.com/",
	network.Mumbai:          "https://polygon-explorer-mumbai.chainstacklabs.com/",
	network.EnergyWebChain:  "https://explorer.energyweb.org/",
	network.Volta:           "https://volta-explorer.energyweb.org/",
	network.PolisOlympus:    "https://explorer.polis.tech",
	network.BobaRinkeby:     "https://blockexplorer.rinkeby.boba.network/",
	network.Boba:            "https://blockexplorer.boba.network/",
	network.GatherDevnet:    "https://devnet-explorer.gather.network/",
	network.GatherTestnet:   "https://testnet-explorer.gather.network/",
	network.GatherMainnet:   "https://explorer.gather.network/",
	network.MetisTestnet:    "https://stardust-explorer.metis.io/",
	network.Metis:           "https://andromeda-explorer.metis.io/",
	network.Fuse:            "https://explorer.fuse.io/",
	network.Velas:           "https://evmexplorer.velas.com/",
	network.ReiMainnet:      "https://scan.rei.network/",
	network.ReiTestnet:      "https://scan-test.rei.network/",
	network.Meter:           "https://scan.meter.io/",
	network.MeterTestnet:    "https://scan-warringstakes.meter.io/",
	network.GodwokenTestnet: "https://v1.betanet.gwscan.com/",
	network.VenidiumTestnet: "https://evm-testnet.venidiumexplorer.com/",
	network.Venidium:        "https://evm.venidiumexplorer.com/",
}

// ContractMetadata holds the verified source information of a contract
type ContractMetadata struct {
	Name   string
	ABI    abi.ABI
	RawABI json.RawMessage
	// PartialMatch is always false: Blockscout only exposes full matches
	PartialMatch bool
}

// Client queries a Blockscout explorer over GraphQL
type Client struct {
	network    network.Network
	baseURL    string
	graphqlURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a custom explorer
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the pooled HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the explorer of the given network
func NewClient(net network.Network, opts ...Option) (*Client, error) {
	c := &Client{
		network:    net,
		baseURL:    NetworkWithURL[net],
		httpClient: &http.Client{Timeout: RequestTimeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, &network.NotSupportedError{Network: net, Service: ServiceName}
	}
	c.graphqlURL = strings.TrimSuffix(c.baseURL, "/") + "/graphiql"

	return c, nil
}

// Network returns the network the client was built for
func (c *Client) Network() network.Network {
	return c.network
}

// BaseURL returns the resolved explorer URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errNotOK marks a non-2xx response, which is reported as "no metadata"
var errNotOK = errors.New("response not ok")

// doRequest posts a GraphQL query. A nil map with nil error means the explorer
// answered with a non-2xx status.
func (c *Client) doRequest(ctx context.Context, query string) (map[string]json.RawMessage, error) {
	c.logger.Debug("blockscout request", "url", c.graphqlURL, "query", query)

	var result map[string]json.RawMessage
	err := requests.URL(c.graphqlURL).
		Client(c.httpClient).
		BodyJSON(map[string]string{"query": query}).
		AddValidator(func(res *http.Response) error {
			if res.StatusCode < 200 || res.StatusCode > 299 {
				c.logger.Debug("blockscout response not ok", "status", res.StatusCode)
				return errNotOK
			}
			return nil
		}).
		ToJSON(&result).
		Fetch(ctx)
	if errors.Is(err, errNotOK) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blockscout request failed: %w", err)
	}
	return result, nil
}

type addressResult struct {
	Address *struct {
		Hash          string `json:"hash"`
		SmartContract *struct {
			Name string `json:"name"`
			ABI  string `json:"abi"`
		} `json:"smartContract"`
	} `json:"address"`
}

// GetContractMetadata returns the verified name and ABI of a contract.
// Unverified contracts and explorer failures both yield nil without error.
func (c *Client) GetContractMetadata(ctx context.Context, address common.Address) (*ContractMetadata, error) {
	query := fmt.Sprintf(`{address(hash: "%s") { hash, smartContract {name, abi} }}`, address.Hex())

	result, err := c.doRequest(ctx, query)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	if _, ok := result["error"]; ok {
		return nil, nil
	}

	rawData, ok := result["data"]
	if !ok {
		return nil, nil
	}
	var data addressResult
	if err := json.Unmarshal(rawData, &data); err != nil {
		return nil, fmt.Errorf("failed to decode blockscout response: %w", err)
	}
	if data.Address == nil || data.Address.SmartContract == nil {
		return nil, nil
	}

	smartContract := data.Address.SmartContract
	parsed, err := abi.JSON(strings.NewReader(smartContract.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to decode ABI of %s: %w", address.Hex(), err)
	}

	return &ContractMetadata{
		Name:         smartContract.Name,
		ABI:          parsed,
		RawABI:       json.RawMessage(smartContract.ABI),
		PartialMatch: false,
	}, nil
}
