package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pawurb/mevlog-viewer/internal/domain"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// TraceTransactionParams contains parameters for tracing a transaction
type TraceTransactionParams struct {
	Query      models.TraceParams
	Transcript Transcript
}

// InspectTransactionParams contains parameters for inspecting a transaction
// and its neighbours in the block
type InspectTransactionParams struct {
	Query      models.InspectParams
	Transcript Transcript
}

// TxStreamResult contains the result of a trace or inspect stream
type TxStreamResult struct {
	TxHash string
	Stats  *StreamStats
}

// TraceTransaction streams the execution trace of one transaction
type TraceTransaction struct {
	cfg *config.RuntimeConfig
	txs *txStreamer
}

// NewTraceTransaction creates a new TraceTransaction use case
func NewTraceTransaction(cfg *config.RuntimeConfig, streamer Streamer, hub ResultHub, sink ProgressSink, log *slog.Logger) *TraceTransaction {
	return &TraceTransaction{
		cfg: cfg,
		txs: &txStreamer{streamer: streamer, hub: hub, sink: sink, log: log.With("component", "trace")},
	}
}

// Run executes the trace use case
func (uc *TraceTransaction) Run(ctx context.Context, params TraceTransactionParams) (*TxStreamResult, error) {
	query := params.Query
	query.TxHash = strings.TrimSpace(query.TxHash)
	if query.RPCURL == "" {
		query.RPCURL = uc.cfg.RPCURL
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTxHash, err)
	}

	values := url.Values{}
	values.Set("tx_hash", query.TxHash)
	if query.RPCURL != "" {
		values.Set("rpc_url", query.RPCURL)
	}
	return uc.txs.run(ctx, models.StreamTrace, query.TxHash, values, params.Transcript)
}

// InspectTransaction streams a transaction together with the surrounding
// transactions of its block
type InspectTransaction struct {
	cfg *config.RuntimeConfig
	txs *txStreamer
}

// NewInspectTransaction creates a new InspectTransaction use case
func NewInspectTransaction(cfg *config.RuntimeConfig, streamer Streamer, hub ResultHub, sink ProgressSink, log *slog.Logger) *InspectTransaction {
	return &InspectTransaction{
		cfg: cfg,
		txs: &txStreamer{streamer: streamer, hub: hub, sink: sink, log: log.With("component", "inspect")},
	}
}

// Run executes the inspect use case
func (uc *InspectTransaction) Run(ctx context.Context, params InspectTransactionParams) (*TxStreamResult, error) {
	query := params.Query
	query.TxHash = strings.TrimSpace(query.TxHash)
	if query.RPCURL == "" {
		query.RPCURL = uc.cfg.RPCURL
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTxHash, err)
	}

	values := url.Values{}
	values.Set("tx_hash", query.TxHash)
	for key, value := range map[string]string{
		"before":  strings.TrimSpace(query.Before),
		"after":   strings.TrimSpace(query.After),
		"rpc_url": query.RPCURL,
	} {
		if value != "" {
			values.Set(key, value)
		}
	}
	if query.Reverse {
		values.Set("reverse", "true")
	}
	return uc.txs.run(ctx, models.StreamInspect, query.TxHash, values, params.Transcript)
}

// txStreamer runs a per-transaction stream; JSON batches go to the hub when a
// viewer is subscribed, everything else to the transcript
type txStreamer struct {
	streamer Streamer
	hub      ResultHub
	sink     ProgressSink
	log      *slog.Logger
}

func (s *txStreamer) run(ctx context.Context, kind models.StreamKind, txHash string, values url.Values, transcript Transcript) (*TxStreamResult, error) {
	session := &streamSession{
		streamer:   s.streamer,
		hub:        s.hub,
		sink:       s.sink,
		transcript: transcriptOrNop(transcript),
		route:      viewer.RouteReplace,
		log:        s.log,
	}
	stats, err := session.run(ctx, kind, values)
	return &TxStreamResult{TxHash: txHash, Stats: stats}, err
}
