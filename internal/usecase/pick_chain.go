package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// PickChainParams contains parameters for choosing the default chain
type PickChainParams struct {
	// Filter narrows the registry lookup before prompting
	Filter string
}

// PickChainResult contains the chosen chain
type PickChainResult struct {
	Chain      models.ChainEntry
	ConfigPath string
}

// PickChain prompts for a chain and stores it as the default
type PickChain struct {
	registry ChainRegistry
	selector InteractiveSelector
	store    LocalConfigRepository
	log      *slog.Logger
}

// NewPickChain creates a new PickChain use case
func NewPickChain(registry ChainRegistry, selector InteractiveSelector, store LocalConfigRepository, log *slog.Logger) *PickChain {
	return &PickChain{
		registry: registry,
		selector: selector,
		store:    store,
		log:      log.With("component", "pick-chain"),
	}
}

// Run executes the pick chain use case
func (uc *PickChain) Run(ctx context.Context, params PickChainParams) (*PickChainResult, error) {
	candidates := models.DefaultChains
	if filter := strings.TrimSpace(params.Filter); len(filter) >= 2 {
		chains, err := uc.registry.ListChains(ctx, models.ChainQuery{Filter: filter})
		if err != nil {
			uc.log.Warn("chain lookup failed, showing popular chains", "error", err)
		} else if len(chains) > 0 {
			candidates = chains
		}
	}

	chain, err := uc.selector.SelectChain(ctx, candidates, "Select a chain")
	if err != nil {
		return nil, err
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	local.ChainID = chain.ChainID
	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &PickChainResult{Chain: chain, ConfigPath: uc.store.GetPath()}, nil
}
