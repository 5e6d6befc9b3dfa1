package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// EndpointsFile is the optional per-project file with service URL overrides
const EndpointsFile = "safe-eth.toml"

// EndpointsTOML represents the raw safe-eth.toml structure
type EndpointsTOML struct {
	TransactionService map[string]string `toml:"transaction_service"`
	Blockscout         map[string]string `toml:"blockscout"`
}

// loadEnvFiles loads .env and .env.local from dir when present.
// Variables already set in the environment are not overridden.
func loadEnvFiles(dir string) {
	envFiles := []string{
		filepath.Join(dir, ".env"),
		filepath.Join(dir, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadEndpoints parses safe-eth.toml in dir. A missing file yields empty tables.
func loadEndpoints(dir string) (*EndpointsConfig, error) {
	cfg := &EndpointsConfig{
		TransactionService: make(map[network.Network]string),
		Blockscout:         make(map[network.Network]string),
	}

	path := filepath.Join(dir, EndpointsFile)
	var raw EndpointsTOML
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", EndpointsFile, err)
	}

	if err := resolveEndpoints(raw.TransactionService, cfg.TransactionService); err != nil {
		return nil, fmt.Errorf("[transaction_service]: %w", err)
	}
	if err := resolveEndpoints(raw.Blockscout, cfg.Blockscout); err != nil {
		return nil, fmt.Errorf("[blockscout]: %w", err)
	}
	return cfg, nil
}

// resolveEndpoints keys the raw table by network, expanding ${VAR} references
func resolveEndpoints(raw map[string]string, out map[network.Network]string) error {
	for name, url := range raw {
		net, err := network.Parse(name)
		if err != nil {
			return err
		}
		out[net] = os.ExpandEnv(url)
	}
	return nil
}
