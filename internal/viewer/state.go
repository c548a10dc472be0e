// Package viewer holds the transaction list shown to the user and the hub
// through which streamed results reach it.
package viewer

import (
	"cmp"
	"iter"
	"slices"

	"github.com/samber/lo"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// State is the ordered transaction collection behind the viewer. It is not
// safe for concurrent use; only the event loop touches it.
type State struct {
	txs     []models.Transaction
	chain   *models.ChainInfo
	err     string
	loading bool
}

// NewState returns an empty state in the loading phase
func NewState() *State {
	return &State{loading: true}
}

// Replace installs the batch as the whole list. An error batch only sets the
// error message and keeps the list.
func (s *State) Replace(batch models.Batch) {
	s.loading = false
	if batch.IsError() {
		s.err = batch.Error
		return
	}
	s.err = ""
	s.txs = s.enrich(batch.Transactions)
}

// Append upserts the batch: existing records sharing a tx_hash with the batch
// are dropped and the batch is added at the tail in its own order.
func (s *State) Append(batch models.Batch) {
	s.loading = false
	if batch.IsError() {
		s.err = batch.Error
		return
	}
	s.err = ""

	incoming := lo.SliceToMap(batch.Transactions, func(tx models.Transaction) (string, struct{}) {
		return tx.TxHash, struct{}{}
	})
	kept := lo.Reject(s.txs, func(tx models.Transaction, _ int) bool {
		_, ok := incoming[tx.TxHash]
		return ok
	})
	s.txs = append(kept, s.enrich(batch.Transactions)...)
}

// Clear empties the list and enters the loading phase
func (s *State) Clear() {
	s.txs = nil
	s.err = ""
	s.loading = true
}

// SetChainInfo installs a new chain snapshot and re-enriches every record.
// A nil snapshot stops enrichment of later records; records already held keep
// the fields they were enriched with.
func (s *State) SetChainInfo(info *models.ChainInfo) {
	s.chain = info
	for i := range s.txs {
		s.txs[i].Enrich(info)
	}
}

// SetError shows msg without touching the list
func (s *State) SetError(msg string) {
	s.err = msg
	s.loading = false
}

// DismissError clears the error banner
func (s *State) DismissError() {
	s.err = ""
}

func (s *State) Err() string                  { return s.err }
func (s *State) Loading() bool                { return s.loading }
func (s *State) Len() int                     { return len(s.txs) }
func (s *State) ChainInfo() *models.ChainInfo { return s.chain }

// Transactions returns the records in arrival order
func (s *State) Transactions() []models.Transaction {
	return slices.Clone(s.txs)
}

// SortedView yields the records in display order. The default order is
// block number descending then index ascending; a custom key sorts
// numerically with unparseable values treated as 0. Both are stable.
func (s *State) SortedView(cfg models.SortConfig) iter.Seq[models.Transaction] {
	return func(yield func(models.Transaction) bool) {
		sorted := slices.Clone(s.txs)
		slices.SortStableFunc(sorted, comparator(cfg))
		for _, tx := range sorted {
			if !yield(tx) {
				return
			}
		}
	}
}

// Sorted collects SortedView
func (s *State) Sorted(cfg models.SortConfig) []models.Transaction {
	return slices.Collect(s.SortedView(cfg))
}

func (s *State) enrich(txs []models.Transaction) []models.Transaction {
	return lo.Map(txs, func(tx models.Transaction, _ int) models.Transaction {
		tx.Enrich(s.chain)
		return tx
	})
}

func comparator(cfg models.SortConfig) func(a, b models.Transaction) int {
	if cfg.Key == models.SortNone {
		return func(a, b models.Transaction) int {
			if c := cmp.Compare(b.BlockNumber, a.BlockNumber); c != 0 {
				return c
			}
			return cmp.Compare(a.Index.Int(), b.Index.Int())
		}
	}

	value := func(tx models.Transaction) float64 {
		switch cfg.Key {
		case models.SortGasPrice:
			return tx.GasPrice.Float()
		case models.SortTxCost:
			return tx.TxCost.Float()
		case models.SortIndex:
			return float64(tx.Index.Int())
		}
		return 0
	}

	return func(a, b models.Transaction) int {
		c := cmp.Compare(value(a), value(b))
		if cfg.Direction == models.SortDesc {
			return -c
		}
		return c
	}
}

var _ Consumer = (*State)(nil)
