package models

import "fmt"

// ChainInfo is the chain metadata snapshot used to enrich transactions.
// It is immutable once fetched and replaced wholesale on chain switch.
type ChainInfo struct {
	ChainID           uint64   `json:"chain_id" yaml:"chain_id"`
	Name              string   `json:"name" yaml:"name"`
	Currency          string   `json:"currency" yaml:"currency"`
	ExplorerURL       string   `json:"explorer_url,omitempty" yaml:"explorer_url,omitempty"`
	CurrentTokenPrice *float64 `json:"current_token_price,omitempty" yaml:"current_token_price,omitempty"`
}

// ChainEntry is one row of the chain registry
type ChainEntry struct {
	ChainID uint64 `json:"chain_id" yaml:"chain_id"`
	Name    string `json:"name" yaml:"name"`
	Chain   string `json:"chain" yaml:"chain"`
}

// DisplayName is the label shown once a chain is selected
func (c ChainEntry) DisplayName() string {
	return fmt.Sprintf("%s (ID: %d)", c.Name, c.ChainID)
}

// DefaultChains is the static list of popular chains shown when no
// lookup is active.
var DefaultChains = []ChainEntry{
	{ChainID: 1, Name: "Ethereum Mainnet", Chain: "ETH"},
	{ChainID: 10, Name: "OP Mainnet", Chain: "ETH"},
	{ChainID: 56, Name: "BNB Smart Chain Mainnet", Chain: "BSC"},
	{ChainID: 130, Name: "Unichain", Chain: "ETH"},
	{ChainID: 137, Name: "Polygon Mainnet", Chain: "Polygon"},
	{ChainID: 324, Name: "zkSync Mainnet", Chain: "ETH"},
	{ChainID: 8453, Name: "Base", Chain: "ETH"},
	{ChainID: 42161, Name: "Arbitrum One", Chain: "ETH"},
	{ChainID: 43114, Name: "Avalanche C-Chain", Chain: "AVAX"},
	{ChainID: 534352, Name: "Scroll Mainnet", Chain: "ETH"},
}

// DefaultChainID is the chain used when none is configured
const DefaultChainID uint64 = 1

// ChainQuery selects chains from the registry. ChainIDs wins over Filter;
// an empty query asks for the backend's default list.
type ChainQuery struct {
	Filter   string
	ChainIDs []uint64
	Limit    int
}

// FindDefaultChain looks up id in DefaultChains
func FindDefaultChain(id uint64) (ChainEntry, bool) {
	for _, c := range DefaultChains {
		if c.ChainID == id {
			return c, true
		}
	}
	return ChainEntry{}, false
}

// ChainTarget addresses a chain either by id or by a custom RPC endpoint.
// RPCURL takes precedence when both are set.
type ChainTarget struct {
	ChainID uint64
	RPCURL  string
}
