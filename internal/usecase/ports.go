package usecase

import (
	"context"
	"net/url"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// ChainRegistry looks chains up by name filter or id
type ChainRegistry interface {
	ListChains(ctx context.Context, q models.ChainQuery) ([]models.ChainEntry, error)
}

// ChainInfoFetcher loads the metadata snapshot of one chain
type ChainInfoFetcher interface {
	ChainInfo(ctx context.Context, target models.ChainTarget) (*models.ChainInfo, error)
}

// BlockExplorer loads every transaction of a single block. A nil block
// means the latest one.
type BlockExplorer interface {
	ExploreBlock(ctx context.Context, target models.ChainTarget, block *uint64) (models.Batch, error)
}

// Stream is an open backend stream. Messages is closed when the stream
// ends; Err then reports why.
type Stream interface {
	Messages() <-chan models.StreamMessage
	Err() error
	Close() error
}

// Streamer opens backend streams
type Streamer interface {
	Open(ctx context.Context, kind models.StreamKind, query url.Values) (Stream, error)
}

// LocalConfigRepository handles the persisted local config
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	GetPath() string
}

// SampleCatalog lists the built-in sample searches
type SampleCatalog interface {
	All() ([]models.Sample, error)
	Find(name string) (models.Sample, error)
}

// InteractiveSelector asks the user to pick from a list
type InteractiveSelector interface {
	SelectChain(ctx context.Context, chains []models.ChainEntry, prompt string) (models.ChainEntry, error)
	SelectSample(ctx context.Context, samples []models.Sample, prompt string) (models.Sample, error)
}

// Transcript receives stream frames that are not transaction batches,
// and batches nobody consumed
type Transcript interface {
	Line(text string)
}

// ResultHub is where streamed and fetched batches are published
type ResultHub interface {
	Begin() uint64
	Deliver(gen uint64, route viewer.Route, batch models.Batch) viewer.Outcome
	DeliverChainInfo(gen uint64, info *models.ChainInfo) viewer.Outcome
	ClearFor(gen uint64) viewer.Outcome
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Progress stages
const (
	StageConnecting = "connecting"
	StageStreaming  = "streaming"
	StageLoading    = "loading"
	StageCompleted  = "completed"
)

var _ ResultHub = (*viewer.Hub)(nil)
