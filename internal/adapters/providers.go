package adapters

import (
	"github.com/google/wire"

	"github.com/pawurb/mevlog-viewer/internal/adapters/fs"
	"github.com/pawurb/mevlog-viewer/internal/adapters/interactive"
	"github.com/pawurb/mevlog-viewer/internal/adapters/mevlogapi"
	"github.com/pawurb/mevlog-viewer/internal/adapters/stream"
	"github.com/pawurb/mevlog-viewer/internal/samples"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),
)

// BackendSet provides the mevlog backend clients
var BackendSet = wire.NewSet(
	mevlogapi.NewClient,
	wire.Bind(new(usecase.ChainRegistry), new(*mevlogapi.Client)),
	wire.Bind(new(usecase.ChainInfoFetcher), new(*mevlogapi.Client)),
	wire.Bind(new(usecase.BlockExplorer), new(*mevlogapi.Client)),

	stream.NewClient,
	wire.Bind(new(usecase.Streamer), new(*stream.Client)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),
)

// ViewerSet provides the result hub shared by use cases and views
var ViewerSet = wire.NewSet(
	viewer.NewHub,
	wire.Bind(new(usecase.ResultHub), new(*viewer.Hub)),
)

// SamplesSet provides the built-in sample catalog
var SamplesSet = wire.NewSet(
	samples.NewCatalog,
	wire.Bind(new(usecase.SampleCatalog), new(*samples.Catalog)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	BackendSet,
	InteractiveSet,
	ViewerSet,
	SamplesSet,
)
