package signer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
)

func TestKeyProvider(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		s, err := NewKeyProvider(&config.RuntimeConfig{}).Signer()
		assert.Nil(t, s)
		assert.ErrorIs(t, err, usecase.ErrNoSigner)
	})

	t.Run("valid key", func(t *testing.T) {
		cfg := &config.RuntimeConfig{PrivateKey: "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"}
		s, err := NewKeyProvider(cfg).Signer()
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"), s.Address())
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := NewKeyProvider(&config.RuntimeConfig{PrivateKey: "0x1234"}).Signer()
		require.Error(t, err)
		assert.NotErrorIs(t, err, usecase.ErrNoSigner)
	})
}
