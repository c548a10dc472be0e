package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pawurb/mevlog-viewer/internal/domain/command"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// SearchTransactionsParams contains parameters for a search
type SearchTransactionsParams struct {
	Query models.SearchParams

	// Resume starts from the last persisted search; set fields in Query override it
	Resume bool

	// Append accumulates batches across messages instead of replacing the list
	Append     bool
	Transcript Transcript
}

// SearchTransactionsResult contains the result of a search
type SearchTransactionsResult struct {
	Query   models.SearchParams
	Command string
	URL     string
	Stats   *StreamStats
}

// SearchTransactions streams search results into the result hub
type SearchTransactions struct {
	cfg      *config.RuntimeConfig
	streamer Streamer
	hub      ResultHub
	store    LocalConfigRepository
	sink     ProgressSink
	log      *slog.Logger
}

// NewSearchTransactions creates a new SearchTransactions use case
func NewSearchTransactions(
	cfg *config.RuntimeConfig,
	streamer Streamer,
	hub ResultHub,
	store LocalConfigRepository,
	sink ProgressSink,
	log *slog.Logger,
) *SearchTransactions {
	return &SearchTransactions{
		cfg:      cfg,
		streamer: streamer,
		hub:      hub,
		store:    store,
		sink:     sink,
		log:      log.With("component", "search"),
	}
}

// Run executes the search use case
func (uc *SearchTransactions) Run(ctx context.Context, params SearchTransactionsParams) (*SearchTransactionsResult, error) {
	query := params.Query
	if params.Resume {
		last, err := uc.lastSearch(ctx)
		if err != nil {
			return nil, err
		}
		query = mergeSearchParams(last, query)
	}

	if strings.TrimSpace(query.ChainID) == "" && uc.cfg.ChainID != 0 {
		query.ChainID = strconv.FormatUint(uc.cfg.ChainID, 10)
	}
	if strings.TrimSpace(query.RPCURL) == "" {
		query.RPCURL = uc.cfg.RPCURL
	}

	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search: %w", err)
	}

	result := &SearchTransactionsResult{
		Query:   query,
		Command: command.Build(command.ModeSearch, command.Params{SearchParams: query}),
		URL:     models.SearchURL(query),
	}

	uc.persist(ctx, result.URL)

	session := &streamSession{
		streamer:   uc.streamer,
		hub:        uc.hub,
		sink:       uc.sink,
		transcript: transcriptOrNop(params.Transcript),
		route:      routeFor(params.Append),
		log:        uc.log,
	}
	stats, err := session.run(ctx, models.StreamSearch, query.Values())
	result.Stats = stats
	if err != nil {
		return result, err
	}
	return result, nil
}

func (uc *SearchTransactions) lastSearch(ctx context.Context) (models.SearchParams, error) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		return models.SearchParams{}, fmt.Errorf("failed to load config: %w", err)
	}
	if local.LastSearch == "" {
		return models.SearchParams{}, errors.New("no previous search to resume")
	}
	last, err := models.ParseSearchURL(local.LastSearch)
	if err != nil {
		return models.SearchParams{}, fmt.Errorf("failed to parse last search %q: %w", local.LastSearch, err)
	}
	return last, nil
}

// persist records the URL state; failures only cost the resume feature
func (uc *SearchTransactions) persist(ctx context.Context, url string) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		uc.log.Warn("could not load config to save search", "error", err)
		return
	}
	local.LastSearch = url
	if err := uc.store.Save(ctx, local); err != nil {
		uc.log.Warn("could not save search", "error", err)
	}
}

func routeFor(appendBatches bool) viewer.Route {
	if appendBatches {
		return viewer.RouteAppend
	}
	return viewer.RouteReplace
}

// mergeSearchParams overlays the non-empty values of override on base
func mergeSearchParams(base, override models.SearchParams) models.SearchParams {
	merged := base.Values()
	for key, values := range override.Values() {
		merged[key] = values
	}
	return models.SearchParamsFromValues(merged)
}
