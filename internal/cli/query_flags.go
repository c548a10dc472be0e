package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// searchFlags are the search form fields exposed as flags
type searchFlags struct {
	params models.SearchParams
}

func (f *searchFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.params.Blocks, "blocks", "b", "", "Block range, e.g. latest, 100:latest or 21000000:21000010")
	fs.StringVarP(&f.params.Position, "position", "p", "", "Position in block, e.g. 0 or 0:5")
	fs.StringVar(&f.params.From, "from", "", "Sender address or ENS name")
	fs.StringVar(&f.params.To, "to", "", "Receiver address or ENS name")
	fs.StringVar(&f.params.Event, "event", "", "Emitted event name or signature")
	fs.StringVar(&f.params.NotEvent, "not-event", "", "Exclude transactions emitting this event")
	fs.StringVar(&f.params.Method, "method", "", "Called method name or signature")
	fs.StringVar(&f.params.ERC20Transfer, "erc20-transfer", "", "ERC20 transfer filter, e.g. 0xa0b8...|>=100000")
	fs.StringVar(&f.params.TxCost, "tx-cost", "", "Transaction cost filter, e.g. ge0.01ether")
	fs.StringVar(&f.params.GasPrice, "gas-price", "", "Gas price filter, e.g. ge2gwei")
	fs.BoolVar(&f.params.Reverse, "reverse", false, "Reverse the result order")
}

// query returns the form values, with the global chain and RPC flags
// applied when they were given explicitly
func (f *searchFlags) query(cmd *cobra.Command) models.SearchParams {
	q := f.params
	if fl := cmd.Flag("chain-id"); fl != nil && fl.Changed {
		q.ChainID = fl.Value.String()
	}
	if fl := cmd.Flag("rpc-url"); fl != nil && fl.Changed {
		q.RPCURL = fl.Value.String()
	}
	return q
}

// overlay copies the explicitly set flags onto base
func (f *searchFlags) overlay(cmd *cobra.Command, base models.SearchParams) models.SearchParams {
	q := f.query(cmd)
	values := base.Values()
	for key, vals := range q.Values() {
		if cmd.Flags().Changed(strings.ReplaceAll(key, "_", "-")) {
			values[key] = vals
		}
	}
	return models.SearchParamsFromValues(values)
}

// viewFlags control how a transaction list is shown
type viewFlags struct {
	sort   string
	desc   bool
	expand bool
}

func (f *viewFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.sort, "sort", "", "Sort by gas_price, tx_cost or index")
	fs.BoolVar(&f.desc, "desc", false, "Sort descending")
	fs.BoolVar(&f.expand, "expand", false, "Show transaction details and logs")
}

func (f *viewFlags) sortConfig() (models.SortConfig, error) {
	key, ok := models.ParseSortKey(f.sort)
	if !ok {
		return models.SortConfig{}, fmt.Errorf("invalid sort column %q (valid: gas_price, tx_cost, index)", f.sort)
	}
	cfg := models.SortConfig{}.Toggle(key)
	if f.desc && key != models.SortNone {
		cfg = cfg.Toggle(key)
	}
	return cfg, nil
}

// blockFlag reads an optional block number flag
func blockFlag(cmd *cobra.Command, name string) (*uint64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw := cmd.Flag(name).Value.String()
	if raw == "latest" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid block number %q", raw)
	}
	return &n, nil
}
