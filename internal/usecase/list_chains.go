package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// ListChainsParams contains parameters for listing chains
type ListChainsParams struct {
	Filter   string
	ChainIDs []uint64
	Limit    int
}

// ListChainsResult contains the chains found
type ListChainsResult struct {
	Chains []models.ChainEntry

	// Defaults is set when the static list was returned instead of a lookup
	Defaults bool
}

// ListChains looks chains up in the registry
type ListChains struct {
	registry ChainRegistry
	log      *slog.Logger
}

// NewListChains creates a new ListChains use case
func NewListChains(registry ChainRegistry, log *slog.Logger) *ListChains {
	return &ListChains{
		registry: registry,
		log:      log.With("component", "chains"),
	}
}

// Run executes the list chains use case. A query with neither a filter nor
// ids returns the static popular chains.
func (uc *ListChains) Run(ctx context.Context, params ListChainsParams) (*ListChainsResult, error) {
	query := models.ChainQuery{
		Filter:   strings.TrimSpace(params.Filter),
		ChainIDs: params.ChainIDs,
		Limit:    params.Limit,
	}
	if query.Filter == "" && len(query.ChainIDs) == 0 {
		return &ListChainsResult{Chains: limitChains(models.DefaultChains, params.Limit), Defaults: true}, nil
	}

	chains, err := uc.registry.ListChains(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load available chains: %w", err)
	}
	uc.log.Debug("chains loaded", "filter", query.Filter, "chain_ids", query.ChainIDs, "count", len(chains))

	return &ListChainsResult{Chains: limitChains(chains, params.Limit)}, nil
}

func limitChains(chains []models.ChainEntry, limit int) []models.ChainEntry {
	if limit > 0 && len(chains) > limit {
		return chains[:limit]
	}
	return chains
}
