package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pawurb/mevlog-viewer/internal/domain"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

func TestExploreBlock(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)

	block := models.Batch{Transactions: []models.Transaction{
		{TxHash: hashA, BlockNumber: 21000000, Index: "0"},
		{TxHash: hashB, BlockNumber: 21000000, Index: "1"},
	}}
	polygon := &models.ChainInfo{ChainID: 137, Name: "Polygon Mainnet", Currency: "POL", ExplorerURL: "https://polygonscan.com"}

	t.Run("latest block on the configured chain", func(t *testing.T) {
		explorer := new(MockBlockExplorer)
		explorer.On("ExploreBlock", mock.Anything, models.ChainTarget{ChainID: 1}, (*uint64)(nil)).Return(block, nil)

		hub := viewer.NewHub()
		state := viewer.NewState()
		defer hub.Subscribe(state)()
		store := newMemConfigStore(nil)
		sink := &MockProgressSink{}

		uc := usecase.NewExploreBlock(testRuntimeConfig(), explorer, new(MockChainInfoFetcher), hub, store, sink, log)
		result, err := uc.Run(ctx, usecase.ExploreBlockParams{})

		require.NoError(t, err)
		require.NotNil(t, result.Block)
		assert.Equal(t, uint64(21000000), *result.Block)
		assert.Equal(t, "mevlog search -b 21000000 --chain-id 1", result.Command)
		assert.Equal(t, "/explore?block_number=21000000", result.URL)
		assert.Equal(t, result.URL, store.cfg.LastExplore)
		assert.Equal(t, viewer.Delivered, result.Outcome)
		assert.Equal(t, 2, state.Len())
		assert.Contains(t, sink.messages(), "Loading transactions...")
	})

	t.Run("chain switch loads chain info and enriches", func(t *testing.T) {
		chains := new(MockChainInfoFetcher)
		chains.On("ChainInfo", mock.Anything, models.ChainTarget{ChainID: 137}).Return(polygon, nil)
		explorer := new(MockBlockExplorer)
		explorer.On("ExploreBlock", mock.Anything, models.ChainTarget{ChainID: 137}, (*uint64)(nil)).Return(block, nil)

		hub := viewer.NewHub()
		state := viewer.NewState()
		defer hub.Subscribe(state)()
		sink := &MockProgressSink{}

		uc := usecase.NewExploreBlock(testRuntimeConfig(), explorer, chains, hub, newMemConfigStore(nil), sink, log)
		result, err := uc.Run(ctx, usecase.ExploreBlockParams{ChainID: 137, ChainChanged: true})

		require.NoError(t, err)
		assert.Equal(t, polygon, result.ChainInfo)
		assert.Equal(t, "/explore?block_number=21000000&chain_id=137", result.URL)
		assert.Contains(t, sink.messages(), "Switching networks...")
		for _, tx := range state.Transactions() {
			assert.Equal(t, "Polygon Mainnet", tx.ChainName)
			assert.Equal(t, "https://polygonscan.com", tx.ExplorerURL)
		}
	})

	t.Run("chain info failure does not block the explore call", func(t *testing.T) {
		chains := new(MockChainInfoFetcher)
		chains.On("ChainInfo", mock.Anything, mock.Anything).Return(nil, &domain.APIError{Status: 500, Message: "Invalid chain"})
		explorer := new(MockBlockExplorer)
		explorer.On("ExploreBlock", mock.Anything, mock.Anything, mock.Anything).Return(block, nil)

		uc := usecase.NewExploreBlock(testRuntimeConfig(), explorer, chains, viewer.NewHub(), newMemConfigStore(nil), usecase.NopProgress{}, log)
		result, err := uc.Run(ctx, usecase.ExploreBlockParams{WithChainInfo: true})

		require.NoError(t, err)
		require.Error(t, result.ChainInfoErr)
		assert.True(t, domain.IsAPIError(result.ChainInfoErr))
		assert.Len(t, result.Batch.Transactions, 2)
	})

	t.Run("chain info failure on a chain switch drops the previous chain", func(t *testing.T) {
		ethereum := &models.ChainInfo{ChainID: 1, Name: "Ethereum", ExplorerURL: "https://etherscan.io"}
		chains := new(MockChainInfoFetcher)
		chains.On("ChainInfo", mock.Anything, models.ChainTarget{ChainID: 1}).Return(ethereum, nil)
		chains.On("ChainInfo", mock.Anything, models.ChainTarget{ChainID: 137}).Return(nil, &domain.APIError{Status: 500, Message: "Invalid chain"})
		explorer := new(MockBlockExplorer)
		explorer.On("ExploreBlock", mock.Anything, mock.Anything, mock.Anything).Return(block, nil)

		hub := viewer.NewHub()
		state := viewer.NewState()
		defer hub.Subscribe(state)()

		uc := usecase.NewExploreBlock(testRuntimeConfig(), explorer, chains, hub, newMemConfigStore(nil), usecase.NopProgress{}, log)
		_, err := uc.Run(ctx, usecase.ExploreBlockParams{WithChainInfo: true})
		require.NoError(t, err)
		require.Equal(t, ethereum, state.ChainInfo())

		result, err := uc.Run(ctx, usecase.ExploreBlockParams{ChainID: 137, ChainChanged: true})
		require.NoError(t, err)
		require.Error(t, result.ChainInfoErr)
		assert.Nil(t, state.ChainInfo())
		require.Equal(t, 2, state.Len())
		for _, tx := range state.Transactions() {
			assert.Zero(t, tx.ChainID)
			assert.Empty(t, tx.ChainName)
			assert.Empty(t, tx.ExplorerURL)
		}
	})

	t.Run("specific block shows the block loading message", func(t *testing.T) {
		explorer := new(MockBlockExplorer)
		explorer.On("ExploreBlock", mock.Anything, mock.Anything, lo.ToPtr(uint64(99))).Return(models.Batch{}, nil)
		sink := &MockProgressSink{}

		uc := usecase.NewExploreBlock(testRuntimeConfig(), explorer, new(MockChainInfoFetcher), viewer.NewHub(), newMemConfigStore(nil), sink, log)
		result, err := uc.Run(ctx, usecase.ExploreBlockParams{Block: lo.ToPtr(uint64(99))})

		require.NoError(t, err)
		assert.Contains(t, sink.messages(), "Loading block #99...")
		require.NotNil(t, result.Block)
		assert.Equal(t, uint64(99), *result.Block)
	})

	t.Run("transport failure becomes an error batch", func(t *testing.T) {
		explorer := new(MockBlockExplorer)
		explorer.On("ExploreBlock", mock.Anything, mock.Anything, mock.Anything).Return(models.Batch{}, errors.New("connection reset"))

		hub := viewer.NewHub()
		state := viewer.NewState()
		defer hub.Subscribe(state)()

		uc := usecase.NewExploreBlock(testRuntimeConfig(), explorer, new(MockChainInfoFetcher), hub, newMemConfigStore(nil), usecase.NopProgress{}, log)
		result, err := uc.Run(ctx, usecase.ExploreBlockParams{})

		require.NoError(t, err)
		assert.Nil(t, result.Block)
		assert.Equal(t, "Failed to fetch explore data: connection reset", state.Err())
		assert.Equal(t, "mevlog search -b latest --chain-id 1", result.Command)
	})

	t.Run("rpc url is passed through", func(t *testing.T) {
		cfg := testRuntimeConfig()
		cfg.RPCURL = "https://rpc.example.org"
		explorer := new(MockBlockExplorer)
		explorer.On("ExploreBlock", mock.Anything, models.ChainTarget{ChainID: 1, RPCURL: "https://rpc.example.org"}, mock.Anything).
			Return(block, nil)

		uc := usecase.NewExploreBlock(cfg, explorer, new(MockChainInfoFetcher), viewer.NewHub(), newMemConfigStore(nil), usecase.NopProgress{}, log)
		_, err := uc.Run(ctx, usecase.ExploreBlockParams{})

		require.NoError(t, err)
		explorer.AssertExpectations(t)
	})
}

func TestBlockNavigation(t *testing.T) {
	tests := []struct {
		name    string
		current *uint64
		prev    uint64
		prevOK  bool
		next    uint64
		nextOK  bool
	}{
		{name: "unknown block", current: nil},
		{name: "genesis", current: lo.ToPtr(uint64(0)), next: 1, nextOK: true},
		{name: "regular block", current: lo.ToPtr(uint64(100)), prev: 99, prevOK: true, next: 101, nextOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, ok := usecase.PrevBlock(tt.current)
			assert.Equal(t, tt.prevOK, ok)
			assert.Equal(t, tt.prev, prev)

			next, ok := usecase.NextBlock(tt.current)
			assert.Equal(t, tt.nextOK, ok)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestExploreBlockCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	explorer := new(MockBlockExplorer)
	hub := viewer.NewHub()
	state := viewer.NewState()
	defer hub.Subscribe(state)()

	uc := usecase.NewExploreBlock(testRuntimeConfig(), explorer, new(MockChainInfoFetcher), hub, newMemConfigStore(nil), usecase.NopProgress{}, slog.New(slog.DiscardHandler))
	_, err := uc.Run(ctx, usecase.ExploreBlockParams{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), hub.Generation())
	explorer.AssertNotCalled(t, "ExploreBlock", mock.Anything, mock.Anything, mock.Anything)
}
