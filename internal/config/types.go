package config

import (
	"fmt"
	"time"

	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// OutputFormat selects how command results are printed
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a --output value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case "", OutputTable:
		return OutputTable, nil
	case OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table, json or yaml)", s)
	}
}

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	WorkDir string

	// Context settings
	Network network.Network // zero if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	Yes            bool // Skip confirmation prompts
	Output         OutputFormat
	Timeout        time.Duration
	RateLimit      float64 // requests per second against the transaction service, 0 = unlimited

	// Signing
	PrivateKey string

	// Explicit endpoint overrides from flags or environment
	TransactionServiceURL string
	BlockscoutURL         string

	// Per-network endpoint overrides from safe-eth.toml
	Endpoints *EndpointsConfig
}

// RequireNetwork returns the selected network or an error when none was given
func (c *RuntimeConfig) RequireNetwork() (network.Network, error) {
	if c.Network == 0 {
		return 0, fmt.Errorf("no network specified, use --network or SAFE_NETWORK")
	}
	return c.Network, nil
}

// Interactive reports whether prompts may be shown
func (c *RuntimeConfig) Interactive() bool {
	return !c.NonInteractive && !c.Yes
}

// EndpointsConfig holds service URLs keyed by network
type EndpointsConfig struct {
	TransactionService map[network.Network]string
	Blockscout         map[network.Network]string
}

// TransactionServiceURLFor returns the endpoint to use for the transaction service
// on net, or "" to fall back to the built-in table
func (c *RuntimeConfig) TransactionServiceURLFor(net network.Network) string {
	if c.TransactionServiceURL != "" {
		return c.TransactionServiceURL
	}
	if c.Endpoints != nil {
		return c.Endpoints.TransactionService[net]
	}
	return ""
}

// BlockscoutURLFor returns the explorer endpoint to use on net, or "" to fall
// back to the built-in table
func (c *RuntimeConfig) BlockscoutURLFor(net network.Network) string {
	if c.BlockscoutURL != "" {
		return c.BlockscoutURL
	}
	if c.Endpoints != nil {
		return c.Endpoints.Blockscout[net]
	}
	return ""
}
