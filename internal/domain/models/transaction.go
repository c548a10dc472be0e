package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity holds a numeric backend value in its raw textual form.
// The backend emits some amounts as JSON numbers and others as strings.
type Quantity string

// UnmarshalJSON accepts numbers, strings and null
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode quantity: %w", err)
		}
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode quantity: %w", err)
	}
	*q = Quantity(n.String())
	return nil
}

// MarshalJSON keeps numeric values numeric
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(string(q), 64); err == nil && json.Valid([]byte(q)) {
		return []byte(q), nil
	}
	return json.Marshal(string(q))
}

// Float parses the quantity, returning 0 for empty or malformed values
func (q Quantity) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(q)), 64)
	if err != nil {
		return 0
	}
	return f
}

// Int parses the quantity as an integer, returning 0 for empty or malformed values
func (q Quantity) Int() int64 {
	s := strings.TrimSpace(string(q))
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func (q Quantity) String() string {
	return string(q)
}

// Transaction is one transaction record as delivered by the mevlog backend.
// Identity is the pair (BlockNumber, TxHash).
type Transaction struct {
	TxHash      string   `json:"tx_hash" yaml:"tx_hash"`
	BlockNumber uint64   `json:"block_number" yaml:"block_number"`
	Index       Quantity `json:"index" yaml:"index"`
	Signature   string   `json:"signature" yaml:"signature"`
	From        string   `json:"from,omitempty" yaml:"from,omitempty"`
	To          string   `json:"to,omitempty" yaml:"to,omitempty"`
	Success     bool     `json:"success" yaml:"success"`

	GasPrice         Quantity `json:"gas_price" yaml:"gas_price"`
	GasUsed          Quantity `json:"gas_used,omitempty" yaml:"gas_used,omitempty"`
	TxCost           Quantity `json:"tx_cost" yaml:"tx_cost"`
	DisplayTxCost    string   `json:"display_tx_cost,omitempty" yaml:"display_tx_cost,omitempty"`
	DisplayTxCostUSD string   `json:"display_tx_cost_usd,omitempty" yaml:"display_tx_cost_usd,omitempty"`
	DisplayValue     string   `json:"display_value,omitempty" yaml:"display_value,omitempty"`

	LogGroups []LogGroup `json:"log_groups,omitempty" yaml:"log_groups,omitempty"`

	// Copied from the current ChainInfo, see Enrich
	ChainID          uint64   `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	ChainName        string   `json:"chain_name,omitempty" yaml:"chain_name,omitempty"`
	ExplorerURL      string   `json:"explorer_url,omitempty" yaml:"explorer_url,omitempty"`
	NativeTokenPrice *float64 `json:"native_token_price,omitempty" yaml:"native_token_price,omitempty"`
}

// Key returns the record identity
func (t *Transaction) Key() string {
	return fmt.Sprintf("%d-%s", t.BlockNumber, t.TxHash)
}

// Enrich copies the chain-level display fields onto the transaction.
// A nil chain leaves the record untouched.
func (t *Transaction) Enrich(chain *ChainInfo) {
	if chain == nil {
		return
	}
	t.ChainID = chain.ChainID
	t.ChainName = chain.Name
	t.ExplorerURL = chain.ExplorerURL
	t.NativeTokenPrice = chain.CurrentTokenPrice
}

// LogGroup is the set of logs emitted by one contract within a transaction
type LogGroup struct {
	Source string     `json:"source,omitempty" yaml:"source,omitempty"`
	Logs   []LogEntry `json:"logs" yaml:"logs"`
}

// DisplaySource returns the group source, falling back to the first log's source
func (g LogGroup) DisplaySource() string {
	if g.Source != "" {
		return g.Source
	}
	if len(g.Logs) > 0 {
		return g.Logs[0].Source
	}
	return ""
}

// LogEntry is a single decoded event log
type LogEntry struct {
	Source    string   `json:"source,omitempty" yaml:"source,omitempty"`
	Signature string   `json:"signature" yaml:"signature"`
	Symbol    string   `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Topics    []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	Data      string   `json:"data,omitempty" yaml:"data,omitempty"`
}
