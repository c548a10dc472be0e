package app

import (
	"log/slog"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Shared dependencies
	Hub      *viewer.Hub
	Selector usecase.InteractiveSelector

	// Use cases
	SearchTransactions *usecase.SearchTransactions
	ExploreBlock       *usecase.ExploreBlock
	TraceTransaction   *usecase.TraceTransaction
	InspectTransaction *usecase.InspectTransaction
	ListChains         *usecase.ListChains
	GetChainInfo       *usecase.GetChainInfo
	PickChain          *usecase.PickChain
	ListSamples        *usecase.ListSamples
	SelectSample       *usecase.SelectSample
	ShowConfig         *usecase.ShowConfig
	SetConfig          *usecase.SetConfig
	RemoveConfig       *usecase.RemoveConfig

	// Adapters (needed for the TUI, which builds its own explore use case)
	Registry    usecase.ChainRegistry
	ChainInfo   usecase.ChainInfoFetcher
	Explorer    usecase.BlockExplorer
	ConfigStore usecase.LocalConfigRepository
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	hub *viewer.Hub,
	selector usecase.InteractiveSelector,
	searchTransactions *usecase.SearchTransactions,
	exploreBlock *usecase.ExploreBlock,
	traceTransaction *usecase.TraceTransaction,
	inspectTransaction *usecase.InspectTransaction,
	listChains *usecase.ListChains,
	getChainInfo *usecase.GetChainInfo,
	pickChain *usecase.PickChain,
	listSamples *usecase.ListSamples,
	selectSample *usecase.SelectSample,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	registry usecase.ChainRegistry,
	chainInfo usecase.ChainInfoFetcher,
	explorer usecase.BlockExplorer,
	configStore usecase.LocalConfigRepository,
) (*App, error) {
	return &App{
		Config:             cfg,
		Logger:             logger,
		Hub:                hub,
		Selector:           selector,
		SearchTransactions: searchTransactions,
		ExploreBlock:       exploreBlock,
		TraceTransaction:   traceTransaction,
		InspectTransaction: inspectTransaction,
		ListChains:         listChains,
		GetChainInfo:       getChainInfo,
		PickChain:          pickChain,
		ListSamples:        listSamples,
		SelectSample:       selectSample,
		ShowConfig:         showConfig,
		SetConfig:          setConfig,
		RemoveConfig:       removeConfig,
		Registry:           registry,
		ChainInfo:          chainInfo,
		Explorer:           explorer,
		ConfigStore:        configStore,
	}, nil
}
