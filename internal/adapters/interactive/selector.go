package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/network"
)

// SelectorAdapter handles interactive prompts
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// Confirm asks a yes/no question, defaulting to no
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return false, fmt.Errorf("confirmation not available in non-interactive mode, use --yes")
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	if _, err := confirm.Run(); err != nil {
		// promptui reports "no" as ErrAbort
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// SelectNetwork lets the user pick one of networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []network.Network, prompt string) (network.Network, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return 0, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(networks) == 0 {
		return 0, fmt.Errorf("no networks provided for selection")
	}

	// If only one option, return it directly
	if len(networks) == 1 {
		return networks[0], nil
	}

	options := formatNetworkOptions(networks)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to search, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}

	return networks[index], nil
}

// formatNetworkOptions creates display strings for network selection
func formatNetworkOptions(networks []network.Network) []string {
	options := make([]string, len(networks))
	for i, n := range networks {
		// Format as "name (chain id)"
		name := color.New(color.FgWhite, color.Bold).Sprint(n.String())
		chainID := color.New(color.FgBlue).Sprintf("%d", n.ChainID())
		options[i] = fmt.Sprintf("%s (%s)", name, chainID)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.Confirmer       = (*SelectorAdapter)(nil)
	_ usecase.NetworkSelector = (*SelectorAdapter)(nil)
)
