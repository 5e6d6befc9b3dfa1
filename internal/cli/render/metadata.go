package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
)

// MetadataRenderer renders verified contract metadata
type MetadataRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

func NewMetadataRenderer(out io.Writer, format config.OutputFormat) *MetadataRenderer {
	return &MetadataRenderer{out: out, format: format}
}

type metadataView struct {
	Network      string `json:"network" yaml:"network"`
	Address      string `json:"address" yaml:"address"`
	Verified     bool   `json:"verified" yaml:"verified"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	PartialMatch bool   `json:"partialMatch" yaml:"partialMatch"`
	ABI          any    `json:"abi,omitempty" yaml:"abi,omitempty"`
}

func (r *MetadataRenderer) Render(result *usecase.ContractMetadataResult) error {
	if r.format != config.OutputTable {
		view := metadataView{
			Network:  result.Network.String(),
			Address:  result.Address.Hex(),
			Verified: result.Found(),
		}
		if result.Found() {
			view.Name = result.Metadata.Name
			view.PartialMatch = result.Metadata.PartialMatch
			if len(result.Metadata.RawABI) > 0 {
				var abi any
				if err := json.Unmarshal(result.Metadata.RawABI, &abi); err != nil {
					return fmt.Errorf("failed to decode ABI: %w", err)
				}
				view.ABI = abi
			}
		}
		return writeStructured(r.out, r.format, view)
	}

	if !result.Found() {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("No verified contract found at %s on %s", result.Address.Hex(), result.Network)))
		return nil
	}

	md := result.Metadata
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Contract:"), md.Name)
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Address: "), addressStyle.Sprint(result.Address.Hex()))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Network: "), result.Network)
	match := "full"
	if md.PartialMatch {
		match = "partial"
	}
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Match:   "), match)

	if len(md.ABI.Methods) == 0 && len(md.ABI.Events) == 0 {
		return nil
	}

	fmt.Fprintln(r.out)
	t := newTable(r.out)
	t.AppendHeader([]any{"Kind", "Signature"})

	methods := make([]string, 0, len(md.ABI.Methods))
	for _, m := range md.ABI.Methods {
		methods = append(methods, m.Sig)
	}
	sort.Strings(methods)
	for _, sig := range methods {
		t.AppendRow([]any{"function", sig})
	}

	events := make([]string, 0, len(md.ABI.Events))
	for _, e := range md.ABI.Events {
		events = append(events, e.Sig)
	}
	sort.Strings(events)
	for _, sig := range events {
		t.AppendRow([]any{"event", faintStyle.Sprint(strings.TrimSpace(sig))})
	}
	t.Render()
	return nil
}

var _ Renderer[*usecase.ContractMetadataResult] = (*MetadataRenderer)(nil)
