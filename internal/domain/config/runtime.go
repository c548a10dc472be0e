package config

import (
	"time"
)

// OutputFormat selects how command results are written
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ParseOutputFormat returns the format for s, or false if unknown
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(s) {
	case OutputTable, OutputJSON, OutputYAML:
		return OutputFormat(s), true
	case "":
		return OutputTable, true
	}
	return "", false
}

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	DataDir string

	// Backend settings
	BaseURL string
	ChainID uint64
	RPCURL  string // takes precedence over ChainID when set

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         OutputFormat
	Color          bool
	Hyperlinks     bool
	Timeout        time.Duration
	Debounce       time.Duration
}
