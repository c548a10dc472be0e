package usecase

import (
	"context"
	"fmt"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// GetChainInfoParams contains parameters for loading chain metadata
type GetChainInfoParams struct {
	ChainID uint64
	RPCURL  string
}

// GetChainInfo loads the metadata of one chain
type GetChainInfo struct {
	cfg    *config.RuntimeConfig
	chains ChainInfoFetcher
}

// NewGetChainInfo creates a new GetChainInfo use case
func NewGetChainInfo(cfg *config.RuntimeConfig, chains ChainInfoFetcher) *GetChainInfo {
	return &GetChainInfo{cfg: cfg, chains: chains}
}

// Run executes the get chain info use case
func (uc *GetChainInfo) Run(ctx context.Context, params GetChainInfoParams) (*models.ChainInfo, error) {
	target := models.ChainTarget{ChainID: params.ChainID, RPCURL: params.RPCURL}
	if target.ChainID == 0 {
		target.ChainID = uc.cfg.ChainID
	}
	if target.RPCURL == "" {
		target.RPCURL = uc.cfg.RPCURL
	}
	if target.ChainID == 0 && target.RPCURL == "" {
		target.ChainID = models.DefaultChainID
	}

	info, err := uc.chains.ChainInfo(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to load chain data: %w", err)
	}
	return info, nil
}
