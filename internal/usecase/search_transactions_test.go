package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

const (
	hashA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hashB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestSearchTransactions(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)

	t.Run("streams batches into the viewer and records the url", func(t *testing.T) {
		streamer := new(MockStreamer)
		stream := newFakeStream(nil,
			`[{"tx_hash":"`+hashA+`","block_number":10,"index":0}]`,
			`[{"tx_hash":"`+hashB+`","block_number":10,"index":1}]`,
		)
		expected := url.Values{"blocks": {"10:latest"}, "chain_id": {"1"}}
		streamer.On("Open", mock.Anything, models.StreamSearch, expected).Return(stream, nil)

		hub := viewer.NewHub()
		state := viewer.NewState()
		defer hub.Subscribe(state)()
		store := newMemConfigStore(nil)
		sink := &MockProgressSink{}

		uc := usecase.NewSearchTransactions(testRuntimeConfig(), streamer, hub, store, sink, log)
		result, err := uc.Run(ctx, usecase.SearchTransactionsParams{
			Query: models.SearchParams{Blocks: "10:latest"},
		})

		require.NoError(t, err)
		assert.Equal(t, "mevlog search -b 10:latest --chain-id 1", result.Command)
		assert.Equal(t, "/search?blocks=10%3Alatest&chain_id=1", result.URL)
		assert.Equal(t, result.URL, store.cfg.LastSearch)
		assert.Equal(t, 2, result.Stats.Batches)
		assert.True(t, stream.closed)

		// each message replaces the list
		require.Equal(t, 1, state.Len())
		assert.Equal(t, hashB, state.Transactions()[0].TxHash)
		assert.Contains(t, sink.messages(), "Loading...")
		streamer.AssertExpectations(t)
	})

	t.Run("append accumulates batches", func(t *testing.T) {
		streamer := new(MockStreamer)
		streamer.On("Open", mock.Anything, models.StreamSearch, mock.Anything).Return(newFakeStream(nil,
			`[{"tx_hash":"`+hashA+`","block_number":10,"index":0}]`,
			`[{"tx_hash":"`+hashB+`","block_number":10,"index":1}]`,
		), nil)

		hub := viewer.NewHub()
		state := viewer.NewState()
		defer hub.Subscribe(state)()

		uc := usecase.NewSearchTransactions(testRuntimeConfig(), streamer, hub, newMemConfigStore(nil), usecase.NopProgress{}, log)
		_, err := uc.Run(ctx, usecase.SearchTransactionsParams{Append: true})

		require.NoError(t, err)
		assert.Equal(t, 2, state.Len())
	})

	t.Run("raw text and unconsumed batches go to the transcript", func(t *testing.T) {
		streamer := new(MockStreamer)
		streamer.On("Open", mock.Anything, models.StreamSearch, mock.Anything).Return(newFakeStream(nil,
			"Searching blocks 10..12",
			`[{"tx_hash":"`+hashA+`","block_number":10,"index":0}]`,
		), nil)

		out := &transcript{}
		uc := usecase.NewSearchTransactions(testRuntimeConfig(), streamer, viewer.NewHub(), newMemConfigStore(nil), usecase.NopProgress{}, log)
		result, err := uc.Run(ctx, usecase.SearchTransactionsParams{Transcript: out})

		require.NoError(t, err)
		require.Len(t, out.lines, 2)
		assert.Equal(t, "Searching blocks 10..12", out.lines[0])
		assert.Contains(t, out.lines[1], "\n  {")
		assert.Equal(t, 1, result.Stats.RawLines)
		assert.Equal(t, 1, result.Stats.Unhandled)
	})

	t.Run("backend error payload becomes the viewer error", func(t *testing.T) {
		streamer := new(MockStreamer)
		streamer.On("Open", mock.Anything, models.StreamSearch, mock.Anything).Return(newFakeStream(nil,
			`{"error":"Authentication required"}`,
		), nil)

		hub := viewer.NewHub()
		state := viewer.NewState()
		defer hub.Subscribe(state)()

		uc := usecase.NewSearchTransactions(testRuntimeConfig(), streamer, hub, newMemConfigStore(nil), usecase.NopProgress{}, log)
		result, err := uc.Run(ctx, usecase.SearchTransactionsParams{})

		require.NoError(t, err)
		assert.Equal(t, "Authentication required", state.Err())
		assert.Equal(t, "Authentication required", result.Stats.LastError)
	})

	t.Run("resume merges the last search", func(t *testing.T) {
		streamer := new(MockStreamer)
		expected := url.Values{"blocks": {"5:latest"}, "chain_id": {"137"}, "event": {"Transfer"}}
		streamer.On("Open", mock.Anything, models.StreamSearch, expected).Return(newFakeStream(nil), nil)

		store := newMemConfigStore(&config.LocalConfig{LastSearch: "/search?blocks=100%3Alatest&chain_id=137&event=Transfer"})
		uc := usecase.NewSearchTransactions(testRuntimeConfig(), streamer, viewer.NewHub(), store, usecase.NopProgress{}, log)
		result, err := uc.Run(ctx, usecase.SearchTransactionsParams{
			Query:  models.SearchParams{Blocks: "5:latest"},
			Resume: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "137", result.Query.ChainID)
		streamer.AssertExpectations(t)
	})

	t.Run("resume without history fails", func(t *testing.T) {
		uc := usecase.NewSearchTransactions(testRuntimeConfig(), new(MockStreamer), viewer.NewHub(), newMemConfigStore(nil), usecase.NopProgress{}, log)
		_, err := uc.Run(ctx, usecase.SearchTransactionsParams{Resume: true})
		assert.ErrorContains(t, err, "no previous search")
	})

	t.Run("invalid params are rejected before connecting", func(t *testing.T) {
		streamer := new(MockStreamer)
		uc := usecase.NewSearchTransactions(testRuntimeConfig(), streamer, viewer.NewHub(), newMemConfigStore(nil), usecase.NopProgress{}, log)
		_, err := uc.Run(ctx, usecase.SearchTransactionsParams{Query: models.SearchParams{Blocks: "ten"}})

		assert.ErrorContains(t, err, "invalid search")
		streamer.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("open failure is wrapped", func(t *testing.T) {
		streamer := new(MockStreamer)
		streamer.On("Open", mock.Anything, models.StreamSearch, mock.Anything).Return(nil, errors.New("dial tcp: refused"))

		uc := usecase.NewSearchTransactions(testRuntimeConfig(), streamer, viewer.NewHub(), newMemConfigStore(nil), usecase.NopProgress{}, log)
		result, err := uc.Run(ctx, usecase.SearchTransactionsParams{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open search stream")
		assert.NotNil(t, result)
	})

	t.Run("a newer request supersedes the stream", func(t *testing.T) {
		hub := viewer.NewHub()
		state := viewer.NewState()
		defer hub.Subscribe(state)()

		stream := &supersedingStream{hub: hub, frame: `[{"tx_hash":"` + hashA + `","block_number":10,"index":0}]`}
		streamer := new(MockStreamer)
		streamer.On("Open", mock.Anything, models.StreamSearch, mock.Anything).Return(stream, nil)

		uc := usecase.NewSearchTransactions(testRuntimeConfig(), streamer, hub, newMemConfigStore(nil), usecase.NopProgress{}, log)
		result, err := uc.Run(ctx, usecase.SearchTransactionsParams{})

		require.NoError(t, err)
		assert.True(t, result.Stats.Superseded)
		assert.Equal(t, 0, state.Len())
	})
}

// supersedingStream starts a newer request before yielding its only frame
type supersedingStream struct {
	hub   *viewer.Hub
	frame string
	ch    chan models.StreamMessage
}

func (s *supersedingStream) Messages() <-chan models.StreamMessage {
	if s.ch == nil {
		s.ch = make(chan models.StreamMessage, 1)
		s.hub.Begin()
		s.ch <- models.NewStreamMessage([]byte(s.frame))
		close(s.ch)
	}
	return s.ch
}

func (s *supersedingStream) Err() error   { return nil }
func (s *supersedingStream) Close() error { return nil }
