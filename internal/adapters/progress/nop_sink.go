package progress

import (
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// NewNopSink creates a no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}

// ForConfig picks the spinner for interactive table output and the no-op sink
// otherwise, so JSON/YAML output stays clean
func ForConfig(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Output != config.OutputTable {
		return NewNopSink()
	}
	return NewSpinnerSink()
}
