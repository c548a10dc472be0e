package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotBatch is returned by ParseBatch for payloads that are neither
// transactions nor an error message
var ErrNotBatch = errors.New("payload is not a transaction batch")

// Batch is one delivered set of transaction records or an error payload
type Batch struct {
	Transactions []Transaction
	Error        string
}

// IsError reports whether the batch carries an error instead of records
func (b Batch) IsError() bool {
	return b.Error != ""
}

// ErrorBatch builds a batch carrying only an error message
func ErrorBatch(format string, args ...any) Batch {
	return Batch{Error: fmt.Sprintf(format, args...)}
}

// ParseBatch decodes a raw backend payload. Accepted shapes are a JSON array
// of transactions, a single transaction object, an object with an "error"
// field and a bare JSON string (error message).
func ParseBatch(raw []byte) (Batch, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Batch{}, ErrNotBatch
	}

	switch raw[0] {
	case '[':
		var txs []Transaction
		if err := json.Unmarshal(raw, &txs); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrNotBatch, err)
		}
		return Batch{Transactions: txs}, nil
	case '"':
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrNotBatch, err)
		}
		if msg == "" {
			return Batch{Error: "unknown backend error"}, nil
		}
		return Batch{Error: msg}, nil
	case '{':
		var shape struct {
			Error *string `json:"error"`
		}
		if err := json.Unmarshal(raw, &shape); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrNotBatch, err)
		}
		if shape.Error != nil {
			if *shape.Error == "" {
				return Batch{Error: "unknown backend error"}, nil
			}
			return Batch{Error: *shape.Error}, nil
		}
		var tx Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrNotBatch, err)
		}
		if tx.TxHash == "" {
			return Batch{}, fmt.Errorf("%w: object has no tx_hash", ErrNotBatch)
		}
		return Batch{Transactions: []Transaction{tx}}, nil
	}

	return Batch{}, ErrNotBatch
}
