package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

func parseAddress(name, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address: %q", name, s)
	}
	return common.HexToAddress(s), nil
}

func parseHash(name, s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid %s: %q (expected 0x-prefixed 32-byte hex)", name, s)
	}
	return common.BytesToHash(b), nil
}

// parseData accepts empty input and hex with or without 0x prefix
func parseData(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0x" {
		return []byte{}, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	return b, nil
}

// parseUint256 accepts decimal or 0x-prefixed hex
func parseUint256(name, s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

func parseOperation(s string) (safe.Operation, error) {
	switch strings.ToLower(s) {
	case "", "0", "call":
		return safe.Call, nil
	case "1", "delegatecall", "delegate_call", "delegate-call":
		return safe.DelegateCall, nil
	default:
		return 0, fmt.Errorf("invalid operation %q (expected call or delegatecall)", s)
	}
}
