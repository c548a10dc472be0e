package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pawurb/mevlog-viewer/internal/domain"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

const (
	// EnvPrefix prefixes every environment override, e.g. MEVLOG_CHAIN_ID
	EnvPrefix = "MEVLOG"

	DefaultBaseURL = "https://mevlog.rs"

	dataDirName = ".mevlog-viewer"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	chainID := v.GetUint64("chain_id")
	if chainID == 0 && v.GetString("chain_id") != "" && v.GetString("chain_id") != "0" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidChainID, v.GetString("chain_id"))
	}

	output, ok := config.ParseOutputFormat(strings.ToLower(v.GetString("output")))
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (expected table, json or yaml)", v.GetString("output"))
	}

	baseURL := strings.TrimRight(v.GetString("base_url"), "/")
	if err := models.ValidateEndpoint(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base_url %q: %w", baseURL, err)
	}

	rpcURL := strings.TrimSpace(v.GetString("rpc_url"))
	if rpcURL != "" {
		if err := models.ValidateEndpoint(rpcURL); err != nil {
			return nil, fmt.Errorf("invalid rpc_url %q: %w", rpcURL, err)
		}
	}

	useColor := !v.GetBool("no_color") && !color.NoColor

	cfg := &config.RuntimeConfig{
		DataDir:        v.GetString("data_dir"),
		BaseURL:        baseURL,
		ChainID:        chainID,
		RPCURL:         rpcURL,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         output,
		Color:          useColor,
		Hyperlinks:     useColor && !v.GetBool("no_hyperlinks"),
		Timeout:        v.GetDuration("timeout"),
		Debounce:       v.GetDuration("debounce"),
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = models.DefaultChainID
	}

	return cfg, nil
}

// DataDir resolves the directory holding config.local.json: the --data-dir
// flag, then MEVLOG_DATA_DIR, then ~/.mevlog-viewer
func DataDir(cmd *cobra.Command) string {
	if cmd != nil {
		if f := cmd.Flag("data-dir"); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	if dir := os.Getenv(EnvPrefix + "_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dataDirName
	}
	return filepath.Join(home, dataDirName)
}

// SetupViper creates and configures a viper instance
func SetupViper(cmd *cobra.Command) *viper.Viper {
	// .env in the working directory; existing variables win
	_ = godotenv.Load()

	dataDir := DataDir(cmd)
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(dataDir)

	// Set up environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("chain_id", models.DefaultChainID)
	v.SetDefault("rpc_url", "")
	v.SetDefault("timeout", "30s")
	v.SetDefault("debounce", "1s")
	v.SetDefault("output", string(config.OutputTable))
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("no_color", false)
	v.SetDefault("no_hyperlinks", false)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		bind := func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		}
		cmd.Flags().VisitAll(bind)
		cmd.InheritedFlags().VisitAll(bind)
	}

	return v
}
