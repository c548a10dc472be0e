package models

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchParams is the state of the search form. Every field holds the raw
// text the user typed; empty means "not set".
type SearchParams struct {
	Blocks        string `json:"blocks,omitempty" yaml:"blocks,omitempty" toml:"blocks"`
	Position      string `json:"position,omitempty" yaml:"position,omitempty" toml:"position"`
	ChainID       string `json:"chain_id,omitempty" yaml:"chain_id,omitempty" toml:"chain_id"`
	From          string `json:"from,omitempty" yaml:"from,omitempty" toml:"from"`
	To            string `json:"to,omitempty" yaml:"to,omitempty" toml:"to"`
	Event         string `json:"event,omitempty" yaml:"event,omitempty" toml:"event"`
	NotEvent      string `json:"not_event,omitempty" yaml:"not_event,omitempty" toml:"not_event"`
	Method        string `json:"method,omitempty" yaml:"method,omitempty" toml:"method"`
	ERC20Transfer string `json:"erc20_transfer,omitempty" yaml:"erc20_transfer,omitempty" toml:"erc20_transfer"`
	TxCost        string `json:"tx_cost,omitempty" yaml:"tx_cost,omitempty" toml:"tx_cost"`
	GasPrice      string `json:"gas_price,omitempty" yaml:"gas_price,omitempty" toml:"gas_price"`
	Reverse       bool   `json:"reverse,omitempty" yaml:"reverse,omitempty" toml:"reverse"`
	RPCURL        string `json:"rpc_url,omitempty" yaml:"rpc_url,omitempty" toml:"rpc_url"`
}

// searchFields lists the query parameter names in form order
var searchFields = []string{
	"blocks", "position", "from", "to", "event", "not_event", "method",
	"erc20_transfer", "tx_cost", "gas_price", "reverse", "rpc_url", "chain_id",
}

func (p *SearchParams) field(name string) *string {
	switch name {
	case "blocks":
		return &p.Blocks
	case "position":
		return &p.Position
	case "chain_id":
		return &p.ChainID
	case "from":
		return &p.From
	case "to":
		return &p.To
	case "event":
		return &p.Event
	case "not_event":
		return &p.NotEvent
	case "method":
		return &p.Method
	case "erc20_transfer":
		return &p.ERC20Transfer
	case "tx_cost":
		return &p.TxCost
	case "gas_price":
		return &p.GasPrice
	case "rpc_url":
		return &p.RPCURL
	}
	return nil
}

// Values returns the non-empty form values as query parameters
func (p SearchParams) Values() url.Values {
	values := url.Values{}
	for _, name := range searchFields {
		if name == "reverse" {
			if p.Reverse {
				values.Set(name, "true")
			}
			continue
		}
		if v := strings.TrimSpace(*p.field(name)); v != "" {
			values.Set(name, v)
		}
	}
	return values
}

// SearchParamsFromValues reads form state back from query parameters
func SearchParamsFromValues(values url.Values) SearchParams {
	var p SearchParams
	for _, name := range searchFields {
		if name == "reverse" {
			p.Reverse, _ = strconv.ParseBool(values.Get(name))
			continue
		}
		*p.field(name) = values.Get(name)
	}
	return p
}

// IsEmpty reports whether no form value is set
func (p SearchParams) IsEmpty() bool {
	return len(p.Values()) == 0
}

// SearchURL renders the shareable URL state of a search
func SearchURL(p SearchParams) string {
	values := p.Values()
	if len(values) == 0 {
		return "/search"
	}
	return "/search?" + values.Encode()
}

// ParseSearchURL is the inverse of SearchURL
func ParseSearchURL(raw string) (SearchParams, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return SearchParams{}, err
	}
	return SearchParamsFromValues(u.Query()), nil
}

// ExploreURL renders the shareable URL state of the explorer. The default
// chain and an unknown or latest block are left out.
func ExploreURL(chainID uint64, block *uint64) string {
	values := url.Values{}
	if chainID != 0 && chainID != DefaultChainID {
		values.Set("chain_id", strconv.FormatUint(chainID, 10))
	}
	if block != nil {
		values.Set("block_number", strconv.FormatUint(*block, 10))
	}
	if len(values) == 0 {
		return "/explore"
	}
	return "/explore?" + values.Encode()
}

// ParseExploreURL is the inverse of ExploreURL. A missing chain_id yields the
// default chain and a missing or "latest" block_number yields nil.
func ParseExploreURL(raw string) (chainID uint64, block *uint64, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, nil, err
	}
	q := u.Query()
	chainID = DefaultChainID
	if s := q.Get("chain_id"); s != "" {
		chainID, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, nil, err
		}
	}
	if s := q.Get("block_number"); s != "" && s != "latest" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, nil, err
		}
		block = &n
	}
	return chainID, block, nil
}

// Sample is a named, ready to run search
type Sample struct {
	Name   string       `toml:"name" json:"name" yaml:"name"`
	Title  string       `toml:"title" json:"title" yaml:"title"`
	Params SearchParams `toml:"params" json:"params" yaml:"params"`
}
