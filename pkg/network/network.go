package network

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Network identifies an EVM chain by its chain ID
type Network uint64

const (
	Mainnet          Network = 1
	Rinkeby          Network = 4
	Goerli           Network = 5
	Optimism         Network = 10
	BobaRinkeby      Network = 28
	Binance          Network = 56
	Meter            Network = 82
	MeterTestnet     Network = 83
	Gnosis           Network = 100
	Velas            Network = 106
	Fuse             Network = 122
	Polygon          Network = 137
	EnergyWebChain   Network = 246
	Boba             Network = 288
	ZkSync           Network = 324
	MetisTestnet     Network = 588
	Acala            Network = 787
	Metis            Network = 1088
	VenidiumTestnet  Network = 4918
	Venidium         Network = 4919
	Base             Network = 8453
	Arbitrum         Network = 42161
	Celo             Network = 42220
	Avalanche        Network = 43114
	ReiMainnet       Network = 47805
	ReiTestnet       Network = 55555
	GodwokenTestnet  Network = 71401
	Volta            Network = 73799
	Mumbai           Network = 80001
	PolisOlympus     Network = 333999
	Sepolia          Network = 11155111
	CeloSepolia      Network = 11142220
	GatherMainnet    Network = 192837465
	GatherTestnet    Network = 356256156
	GatherDevnet     Network = 486217935
	Aurora           Network = 1313161554
)

// ErrNotSupported is the sentinel matched by every NotSupportedError
var ErrNotSupported = errors.New("network not supported")

// NotSupportedError is returned when a client has no endpoint for a network.
// It is a configuration problem and is never worth retrying.
type NotSupportedError struct {
	Network Network
	Service string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s: network %s - %d not supported", e.Service, e.Network, uint64(e.Network))
}

func (e *NotSupportedError) Unwrap() error {
	return ErrNotSupported
}

var names = map[Network]string{
	Mainnet:         "mainnet",
	Rinkeby:         "rinkeby",
	Goerli:          "goerli",
	Optimism:        "optimism",
	BobaRinkeby:     "boba-rinkeby",
	Binance:         "bsc",
	Meter:           "meter",
	MeterTestnet:    "meter-testnet",
	Gnosis:          "gnosis",
	Velas:           "velas",
	Fuse:            "fuse",
	Polygon:         "polygon",
	EnergyWebChain:  "energy-web-chain",
	Boba:            "boba",
	ZkSync:          "zksync",
	MetisTestnet:    "metis-testnet",
	Acala:           "acala",
	Metis:           "metis",
	VenidiumTestnet: "venidium-testnet",
	Venidium:        "venidium",
	Base:            "base",
	Arbitrum:        "arbitrum",
	Celo:            "celo",
	Avalanche:       "avalanche",
	ReiMainnet:      "rei",
	ReiTestnet:      "rei-testnet",
	GodwokenTestnet: "godwoken-testnet",
	Volta:           "volta",
	Mumbai:          "mumbai",
	PolisOlympus:    "olympus",
	Sepolia:         "sepolia",
	CeloSepolia:     "celo-sepolia",
	GatherMainnet:   "gather",
	GatherTestnet:   "gather-testnet",
	GatherDevnet:    "gather-devnet",
	Aurora:          "aurora",
}

// aliases are alternative names accepted by Parse
var aliases = map[string]Network{
	"ethereum": Mainnet,
	"xdai":     Gnosis,
	"matic":    Polygon,
	"binance":  Binance,
	"ewc":      EnergyWebChain,
	"polis":    PolisOlympus,
	"aca":      Acala,
}

// ChainID returns the numeric chain ID
func (n Network) ChainID() uint64 {
	return uint64(n)
}

// String returns the canonical network name, or chain-<id> for unknown chains
func (n Network) String() string {
	if name, ok := names[n]; ok {
		return name
	}
	return fmt.Sprintf("chain-%d", uint64(n))
}

// Known reports whether the network has a canonical name
func (n Network) Known() bool {
	_, ok := names[n]
	return ok
}

// Parse resolves a network from its name, an alias or a decimal chain ID.
// Unknown chain IDs are accepted; whether a client supports them is decided
// when the client is built.
func Parse(input string) (Network, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("network not specified")
	}

	if chainID, err := strconv.ParseUint(input, 10, 64); err == nil {
		return Network(chainID), nil
	}

	lower := strings.ToLower(input)
	for n, name := range names {
		if name == lower {
			return n, nil
		}
	}
	if n, ok := aliases[lower]; ok {
		return n, nil
	}

	if suggestions := Suggest(lower); len(suggestions) > 0 {
		return 0, fmt.Errorf("unknown network: %s (did you mean %s?)", input, strings.Join(suggestions, ", "))
	}
	return 0, fmt.Errorf("unknown network: %s", input)
}

// Suggest returns up to three known network names that fuzzy-match input
func Suggest(input string) []string {
	all := Names()
	matches := fuzzy.Find(input, all)

	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// Names returns all canonical network names sorted alphabetically
func Names() []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SortedKeys returns the networks of an endpoint table ordered by chain ID
func SortedKeys(table map[Network]string) []Network {
	out := make([]Network, 0, len(table))
	for n := range table {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
