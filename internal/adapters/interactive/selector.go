package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectChain lets the user pick a chain
func (s *SelectorAdapter) SelectChain(ctx context.Context, chains []models.ChainEntry, prompt string) (models.ChainEntry, error) {
	index, err := s.selectIndex(prompt, formatChainOptions(chains))
	if err != nil {
		return models.ChainEntry{}, err
	}
	return chains[index], nil
}

// SelectSample lets the user pick a sample query
func (s *SelectorAdapter) SelectSample(ctx context.Context, samples []models.Sample, prompt string) (models.Sample, error) {
	index, err := s.selectIndex(prompt, formatSampleOptions(samples))
	if err != nil {
		return models.Sample{}, err
	}
	return samples[index], nil
}

func (s *SelectorAdapter) selectIndex(prompt string, options []string) (int, error) {
	if s.config.NonInteractive {
		return 0, fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	if len(options) == 0 {
		return 0, fmt.Errorf("nothing to select from")
	}
	if len(options) == 1 {
		return 0, nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, / to search, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     prompt,
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}

func formatChainOptions(chains []models.ChainEntry) []string {
	options := make([]string, len(chains))
	for i, chain := range chains {
		name := color.New(color.FgWhite, color.Bold).Sprint(chain.Name)
		id := color.New(color.FgBlue).Sprintf("ID: %d", chain.ChainID)
		if chain.Chain != "" {
			options[i] = fmt.Sprintf("%s (%s) %s", name, id, color.New(color.Faint).Sprint(chain.Chain))
		} else {
			options[i] = fmt.Sprintf("%s (%s)", name, id)
		}
	}
	return options
}

func formatSampleOptions(samples []models.Sample) []string {
	options := make([]string, len(samples))
	for i, sample := range samples {
		name := color.New(color.FgWhite, color.Bold).Sprint(sample.Name)
		options[i] = fmt.Sprintf("%s  %s", name, sample.Title)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	plain := make([]string, len(items))
	for i, item := range items {
		plain[i] = strings.ToLower(stripANSI(item))
	}

	return func(input string, index int) bool {
		if input == "" {
			return true
		}
		input = strings.ToLower(input)
		item := plain[index]

		if strings.Contains(item, input) {
			return true
		}
		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// stripANSI removes SGR color sequences
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
