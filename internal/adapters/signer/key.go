package signer

import (
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

// KeyProvider hands out a signer backed by the configured private key
type KeyProvider struct {
	cfg *config.RuntimeConfig
}

// NewKeyProvider creates a new KeyProvider
func NewKeyProvider(cfg *config.RuntimeConfig) *KeyProvider {
	return &KeyProvider{cfg: cfg}
}

// Signer parses the private key on each call so a bad key only fails the
// commands that need it
func (p *KeyProvider) Signer() (safe.Signer, error) {
	if p.cfg.PrivateKey == "" {
		return nil, usecase.ErrNoSigner
	}
	signer, err := safe.NewKeySigner(p.cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	return signer, nil
}

var _ usecase.SignerProvider = (*KeyProvider)(nil)
