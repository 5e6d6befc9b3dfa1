package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

func TestSelectorNonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	_, err := s.Confirm(context.Background(), "Continue")
	assert.Error(t, err)

	_, err = s.SelectNetwork(context.Background(), []network.Network{network.Mainnet, network.Gnosis}, "Network")
	assert.Error(t, err)
}

func TestSelectNetworkShortcuts(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{})

	_, err := s.SelectNetwork(context.Background(), nil, "Network")
	assert.Error(t, err)

	got, err := s.SelectNetwork(context.Background(), []network.Network{network.Sepolia}, "Network")
	require.NoError(t, err)
	assert.Equal(t, network.Sepolia, got)
}

func TestFuzzySearch(t *testing.T) {
	options := formatNetworkOptions([]network.Network{network.Mainnet, network.Gnosis, network.Sepolia})
	require.Len(t, options, 3)
	assert.Contains(t, options[1], "gnosis")
	assert.Contains(t, options[1], "100")

	search := createFuzzySearchFunc(options)
	assert.True(t, search("", 0))
	assert.True(t, search("GNO", 1))
	assert.True(t, search("spl", 2))
	assert.False(t, search("gnosis", 0))
}
