package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

func TestResolver(t *testing.T) {
	cfg := &config.RuntimeConfig{
		Endpoints: &config.EndpointsConfig{
			TransactionService: map[network.Network]string{network.Network(31337): "http://localhost:8000"},
			Blockscout:         map[network.Network]string{network.Network(31337): "http://localhost:4000/"},
		},
	}
	r := NewResolver(cfg)

	tests := []struct {
		name       string
		network    network.Network
		wantTx     string
		wantExplor string
	}{
		{
			name:       "built-in tables",
			network:    network.Gnosis,
			wantTx:     "https://safe-transaction-gnosis-chain.safe.global",
			wantExplor: "https://blockscout.com/poa/xdai/graphiql",
		},
		{
			name:       "file overrides",
			network:    network.Network(31337),
			wantTx:     "http://localhost:8000",
			wantExplor: "http://localhost:4000/graphiql",
		},
		{
			name:    "unsupported",
			network: network.Network(999999),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTx, r.TransactionServiceURL(tt.network))
			assert.Equal(t, tt.wantExplor, r.BlockscoutURL(tt.network))
		})
	}
}
