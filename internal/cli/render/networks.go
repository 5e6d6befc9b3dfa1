package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format config.OutputFormat) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

type networkView struct {
	Name                  string `json:"name" yaml:"name"`
	ChainID               uint64 `json:"chainId" yaml:"chainId"`
	TransactionServiceURL string `json:"transactionServiceUrl,omitempty" yaml:"transactionServiceUrl,omitempty"`
	BlockscoutURL         string `json:"blockscoutUrl,omitempty" yaml:"blockscoutUrl,omitempty"`
}

func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.format != config.OutputTable {
		views := make([]networkView, 0, len(result.Networks))
		for _, n := range result.Networks {
			views = append(views, networkView(n))
		}
		return writeStructured(r.out, r.format, views)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No supported networks")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Supported Networks:")
	fmt.Fprintln(r.out)

	t := newTable(r.out)
	t.AppendHeader([]any{"Network", "Chain ID", "Transaction Service", "Blockscout"})
	for _, n := range result.Networks {
		t.AppendRow([]any{n.Name, n.ChainID, orDash(n.TransactionServiceURL), orDash(n.BlockscoutURL)})
	}
	t.Render()
	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
