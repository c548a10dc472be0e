//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/pawurb/mevlog-viewer/internal/adapters"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/logging"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(cfg *config.RuntimeConfig, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Logging
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewSearchTransactions,
		usecase.NewExploreBlock,
		usecase.NewTraceTransaction,
		usecase.NewInspectTransaction,
		usecase.NewListChains,
		usecase.NewGetChainInfo,
		usecase.NewPickChain,
		usecase.NewListSamples,
		usecase.NewSelectSample,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
