package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pawurb/mevlog-viewer/internal/domain/command"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// ExploreBlockParams contains parameters for exploring a block
type ExploreBlockParams struct {
	// ChainID 0 falls back to the configured chain
	ChainID uint64
	RPCURL  string

	// Block nil loads the latest block
	Block *uint64

	// ChainChanged marks a network switch; the chain info is reloaded and the
	// command shows latest until the block is known
	ChainChanged bool

	// WithChainInfo also loads chain metadata and publishes it to the hub
	WithChainInfo bool
}

// ExploreBlockResult contains the result of exploring a block
type ExploreBlockResult struct {
	Target       models.ChainTarget
	Block        *uint64
	ChainInfo    *models.ChainInfo
	ChainInfoErr error
	Batch        models.Batch
	Command      string
	URL          string
	Outcome      viewer.Outcome
}

// ExploreBlock loads a single block into the result hub
type ExploreBlock struct {
	cfg      *config.RuntimeConfig
	explorer BlockExplorer
	chains   ChainInfoFetcher
	hub      ResultHub
	store    LocalConfigRepository
	sink     ProgressSink
	log      *slog.Logger
}

// NewExploreBlock creates a new ExploreBlock use case
func NewExploreBlock(
	cfg *config.RuntimeConfig,
	explorer BlockExplorer,
	chains ChainInfoFetcher,
	hub ResultHub,
	store LocalConfigRepository,
	sink ProgressSink,
	log *slog.Logger,
) *ExploreBlock {
	return &ExploreBlock{
		cfg:      cfg,
		explorer: explorer,
		chains:   chains,
		hub:      hub,
		store:    store,
		sink:     sink,
		log:      log.With("component", "explore"),
	}
}

// Run executes the explore use case. Backend failures end up in the hub as
// error batches. A cancelled context returns its error and delivers nothing.
func (uc *ExploreBlock) Run(ctx context.Context, params ExploreBlockParams) (*ExploreBlockResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := models.ChainTarget{ChainID: params.ChainID, RPCURL: params.RPCURL}
	if target.ChainID == 0 {
		target.ChainID = uc.cfg.ChainID
	}
	if target.ChainID == 0 {
		target.ChainID = models.DefaultChainID
	}
	if target.RPCURL == "" {
		target.RPCURL = uc.cfg.RPCURL
	}

	result := &ExploreBlockResult{Target: target}

	gen := uc.hub.Begin()
	uc.hub.ClearFor(gen)

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageLoading, Message: loadingMessage(params), Spinner: true})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	if params.WithChainInfo || params.ChainChanged {
		info, err := uc.chains.ChainInfo(ctx, target)
		if err != nil {
			uc.log.Warn("failed to load chain data", "chain_id", target.ChainID, "error", err)
			result.ChainInfoErr = fmt.Errorf("failed to load chain data: %w", err)
			// the previous chain's snapshot must not enrich this chain's records
			uc.hub.DeliverChainInfo(gen, nil)
		} else {
			result.ChainInfo = info
			uc.hub.DeliverChainInfo(gen, info)
		}
	}

	batch, err := uc.explorer.ExploreBlock(ctx, target, params.Block)
	if ctx.Err() != nil {
		// superseded by a newer load
		return nil, ctx.Err()
	}
	if err != nil {
		uc.log.Debug("explore request failed", "error", err)
		batch = models.ErrorBatch("Failed to fetch explore data: %v", err)
	}
	result.Batch = batch
	result.Outcome = uc.hub.Deliver(gen, viewer.RouteReplace, batch)

	if !batch.IsError() && len(batch.Transactions) > 0 {
		block := batch.Transactions[0].BlockNumber
		result.Block = &block
	} else if !batch.IsError() {
		result.Block = params.Block
	}

	result.Command = command.Build(command.ModeExplore, command.Params{
		SearchParams:    models.SearchParams{ChainID: strconv.FormatUint(target.ChainID, 10)},
		BlockNumber:     blockString(result.Block),
		IsChangingChain: params.ChainChanged && result.Block == nil,
	})
	result.URL = models.ExploreURL(target.ChainID, result.Block)
	uc.persist(ctx, result.URL)

	return result, nil
}

// persist records the URL state; failures only cost the resume feature
func (uc *ExploreBlock) persist(ctx context.Context, url string) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		uc.log.Warn("could not load config to save explore state", "error", err)
		return
	}
	local.LastExplore = url
	if err := uc.store.Save(ctx, local); err != nil {
		uc.log.Warn("could not save explore state", "error", err)
	}
}

func loadingMessage(params ExploreBlockParams) string {
	switch {
	case params.ChainChanged:
		return "Switching networks..."
	case params.Block != nil:
		return fmt.Sprintf("Loading block #%d...", *params.Block)
	default:
		return "Loading transactions..."
	}
}

func blockString(block *uint64) string {
	if block == nil {
		return ""
	}
	return strconv.FormatUint(*block, 10)
}

// PrevBlock returns the block before current, or false at genesis or when
// the current block is unknown
func PrevBlock(current *uint64) (uint64, bool) {
	if current == nil || *current == 0 {
		return 0, false
	}
	return *current - 1, true
}

// NextBlock returns the block after current, or false when it is unknown
func NextBlock(current *uint64) (uint64, bool) {
	if current == nil {
		return 0, false
	}
	return *current + 1, true
}
