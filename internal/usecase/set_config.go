package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pawurb/mevlog-viewer/internal/domain"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store LocalConfigRepository
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigRepository) *SetConfig {
	return &SetConfig{
		store: store,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := parseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}
	value := strings.TrimSpace(params.Value)

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case config.ConfigKeyChainID:
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidChainID, params.Value)
		}
		cfg.ChainID = id
	case config.ConfigKeyBaseURL:
		if err := models.ValidateEndpoint(value); err != nil {
			return nil, fmt.Errorf("invalid base_url: %w", err)
		}
		cfg.BaseURL = strings.TrimRight(value, "/")
	case config.ConfigKeyRPCURL:
		if err := models.ValidateEndpoint(value); err != nil {
			return nil, fmt.Errorf("invalid rpc_url: %w", err)
		}
		cfg.RPCURL = value
	}

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         value,
	}, nil
}

// parseConfigKey normalizes key and rejects unknown ones
func parseConfigKey(key string) (config.ConfigKey, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !config.IsValidConfigKey(key) {
		validKeys := make([]string, 0, len(config.ValidConfigKeys()))
		for _, k := range config.ValidConfigKeys() {
			validKeys = append(validKeys, string(k))
		}
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", key, strings.Join(validKeys, ", "))
	}
	return config.NormalizeConfigKey(key), nil
}
