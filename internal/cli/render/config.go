package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// displayPath shortens paths under the home directory
func displayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	rel, err := filepath.Rel(home, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return filepath.Join("~", rel)
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	fmt.Fprintln(r.out, "📋 Current config:")

	chainID := ""
	if result.Config.ChainID != 0 {
		chainID = strconv.FormatUint(result.Config.ChainID, 10)
	}
	fmt.Fprintf(r.out, "Chain ID: %s\n", orNotSet(chainID))
	fmt.Fprintf(r.out, "Base URL: %s\n", orNotSet(result.Config.BaseURL))
	fmt.Fprintf(r.out, "RPC URL:  %s\n", orNotSet(result.Config.RPCURL))

	if result.Config.LastSearch != "" || result.Config.LastExplore != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Last search:  %s\n", orNotSet(result.Config.LastSearch))
		fmt.Fprintf(r.out, "Last explore: %s\n", orNotSet(result.Config.LastExplore))
	}

	if result.Runtime != nil {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "🔧 Effective: chain %d via %s\n", result.Runtime.ChainID, result.Runtime.BaseURL)
	}

	if !result.Exists {
		fmt.Fprintf(r.out, "\n📁 config file: %s (not created yet)\n", displayPath(result.ConfigPath))
		return nil
	}
	fmt.Fprintf(r.out, "\n📁 config file: %s\n", displayPath(result.ConfigPath))

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", displayPath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyChainID:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed chain_id (default chain %d will be used)", models.DefaultChainID)))
	case config.ConfigKeyBaseURL:
		fmt.Fprintln(r.out, FormatSuccess("Removed base_url (default backend will be used)"))
	default:
		fmt.Fprintln(r.out, FormatSuccess("Removed "+string(result.Key)))
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", displayPath(result.ConfigPath))
	return nil
}

// RenderPick renders an interactively chosen default chain
func (r *ConfigRenderer) RenderPick(result *usecase.PickChainResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Default chain set to: "+result.Chain.DisplayName()))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", displayPath(result.ConfigPath))
	return nil
}
