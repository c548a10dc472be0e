package usecase_test

import (
	"context"
	"net/url"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// MockStreamer is a mock implementation of Streamer
type MockStreamer struct {
	mock.Mock
}

func (m *MockStreamer) Open(ctx context.Context, kind models.StreamKind, query url.Values) (usecase.Stream, error) {
	args := m.Called(ctx, kind, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.Stream), args.Error(1)
}

// fakeStream replays frames and then ends with err
type fakeStream struct {
	messages chan models.StreamMessage
	err      error
	closed   bool
}

func newFakeStream(err error, frames ...string) *fakeStream {
	s := &fakeStream{messages: make(chan models.StreamMessage, len(frames)), err: err}
	for _, f := range frames {
		s.messages <- models.NewStreamMessage([]byte(f))
	}
	close(s.messages)
	return s
}

func (s *fakeStream) Messages() <-chan models.StreamMessage { return s.messages }
func (s *fakeStream) Err() error                            { return s.err }
func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

// MockChainRegistry is a mock implementation of ChainRegistry
type MockChainRegistry struct {
	mock.Mock
}

func (m *MockChainRegistry) ListChains(ctx context.Context, q models.ChainQuery) ([]models.ChainEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChainEntry), args.Error(1)
}

// MockChainInfoFetcher is a mock implementation of ChainInfoFetcher
type MockChainInfoFetcher struct {
	mock.Mock
}

func (m *MockChainInfoFetcher) ChainInfo(ctx context.Context, target models.ChainTarget) (*models.ChainInfo, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChainInfo), args.Error(1)
}

// MockBlockExplorer is a mock implementation of BlockExplorer
type MockBlockExplorer struct {
	mock.Mock
}

func (m *MockBlockExplorer) ExploreBlock(ctx context.Context, target models.ChainTarget, block *uint64) (models.Batch, error) {
	args := m.Called(ctx, target, block)
	return args.Get(0).(models.Batch), args.Error(1)
}

// MockInteractiveSelector is a mock implementation of InteractiveSelector
type MockInteractiveSelector struct {
	mock.Mock
}

func (m *MockInteractiveSelector) SelectChain(ctx context.Context, chains []models.ChainEntry, prompt string) (models.ChainEntry, error) {
	args := m.Called(ctx, chains, prompt)
	return args.Get(0).(models.ChainEntry), args.Error(1)
}

func (m *MockInteractiveSelector) SelectSample(ctx context.Context, samples []models.Sample, prompt string) (models.Sample, error) {
	args := m.Called(ctx, samples, prompt)
	return args.Get(0).(models.Sample), args.Error(1)
}

// memConfigStore is an in-memory LocalConfigRepository
type memConfigStore struct {
	cfg    *config.LocalConfig
	exists bool
	saves  int
}

func newMemConfigStore(cfg *config.LocalConfig) *memConfigStore {
	if cfg == nil {
		return &memConfigStore{cfg: config.DefaultLocalConfig()}
	}
	return &memConfigStore{cfg: cfg, exists: true}
}

func (s *memConfigStore) Exists() bool { return s.exists }

func (s *memConfigStore) Load(ctx context.Context) (*config.LocalConfig, error) {
	cfg := *s.cfg
	return &cfg, nil
}

func (s *memConfigStore) Save(ctx context.Context, cfg *config.LocalConfig) error {
	saved := *cfg
	s.cfg = &saved
	s.exists = true
	s.saves++
	return nil
}

func (s *memConfigStore) GetPath() string { return "/tmp/mevlog/config.local.json" }

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func (m *MockProgressSink) messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		if e.Message != "" {
			out = append(out, e.Message)
		}
	}
	return out
}

// transcript collects raw lines
type transcript struct {
	lines []string
}

func (t *transcript) Line(text string) { t.lines = append(t.lines, text) }

func testRuntimeConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		BaseURL: "https://mevlog.rs",
		ChainID: 1,
		Output:  config.OutputTable,
	}
}
