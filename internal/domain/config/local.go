package config

// LocalConfig represents the persisted local configuration
type LocalConfig struct {
	ChainID uint64 `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	RPCURL  string `json:"rpc_url,omitempty" yaml:"rpc_url,omitempty"`

	// URL state of the last query, e.g. "/search?blocks=10%3Alatest"
	LastSearch  string `json:"last_search,omitempty" yaml:"last_search,omitempty"`
	LastExplore string `json:"last_explore,omitempty" yaml:"last_explore,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyChainID ConfigKey = "chain_id"
	ConfigKeyBaseURL ConfigKey = "base_url"
	ConfigKeyRPCURL  ConfigKey = "rpc_url"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyChainID,
		ConfigKeyBaseURL,
		ConfigKeyRPCURL,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	normalized := NormalizeConfigKey(key)
	for _, validKey := range ValidConfigKeys() {
		if validKey == normalized {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "chain" -> "chain_id", "base-url" -> "base_url")
func NormalizeConfigKey(key string) ConfigKey {
	switch key {
	case "chain", "chain-id":
		return ConfigKeyChainID
	case "base-url", "url":
		return ConfigKeyBaseURL
	case "rpc", "rpc-url":
		return ConfigKeyRPCURL
	}
	return ConfigKey(key)
}
