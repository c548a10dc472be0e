package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

const (
	hashA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hashB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			TxHash:           hashA,
			BlockNumber:      21000000,
			Index:            "0",
			Signature:        "swapExactTokensForTokensSupportingFeeOnTransferTokens(uint256,uint256)",
			From:             "0x1111111111111111111111111111111111111111",
			GasPrice:         "21000000000",
			GasUsed:          "21000",
			DisplayTxCost:    "0.000441 ETH",
			DisplayTxCostUSD: "$1.37",
			DisplayValue:     "0 ETH",
			Success:          true,
			LogGroups: []models.LogGroup{{
				Logs: []models.LogEntry{{
					Source:    "0x2222222222222222222222222222222222222222",
					Signature: "Transfer(address,address,uint256)",
					Symbol:    "USDC",
					Topics:    []string{"0xddf252ad"},
					Data:      strings.Repeat("0", 70),
				}},
			}},
		},
		{TxHash: hashB, BlockNumber: 21000000, Index: "1", Signature: "transfer(address,uint256)"},
	}
}

func newTestRenderer(out *bytes.Buffer) *TransactionsRenderer {
	return NewTransactionsRenderer(out, &config.RuntimeConfig{})
}

func TestTransactionsRenderer(t *testing.T) {
	t.Run("collapsed rows", func(t *testing.T) {
		var out bytes.Buffer
		r := newTestRenderer(&out)

		require.NoError(t, r.Render(&TransactionsView{
			Transactions:     sampleTransactions(),
			ShowBlockNumbers: true,
			Sort:             models.SortConfig{Key: models.SortGasPrice, Direction: models.SortDesc},
			Cursor:           -1,
		}))

		s := out.String()
		assert.Contains(t, s, "Block")
		assert.Contains(t, s, "Gas Price ▼")
		assert.Contains(t, s, "Index ▲▼")
		assert.Contains(t, s, "#21000000")
		assert.Contains(t, s, "0xaaaaaaaa...")
		assert.Contains(t, s, "swapExactTokensForTokensSupportingFeeOnT...")
		assert.Contains(t, s, "21.00 gwei")
		assert.Contains(t, s, "$1.37")
		assert.Contains(t, s, "$0")
		assert.Contains(t, s, "✓")
		assert.Contains(t, s, "✗")
		assert.NotContains(t, s, "emit")
	})

	t.Run("expanded details follow their row", func(t *testing.T) {
		var out bytes.Buffer
		r := newTestRenderer(&out)

		require.NoError(t, r.Render(&TransactionsView{
			Transactions: sampleTransactions(),
			Expanded:     map[string]bool{hashA: true},
			Cursor:       -1,
		}))

		s := out.String()
		assert.NotContains(t, s, "Block")
		assert.Contains(t, s, hashA)
		assert.Contains(t, s, "0x1111111111111111111111111111111111111111 => <Unknown>")
		assert.Contains(t, s, "Gas Tx Cost: 0.000441 ETH")
		assert.Contains(t, s, "Gas Used: 21000")
		assert.Contains(t, s, "emit Transfer(address,address,uint256) USDC")
		assert.Contains(t, s, strings.Repeat("0", 64)+"\n")

		assert.Less(t, strings.Index(s, "emit Transfer"), strings.Index(s, "0xbbbbbbbb..."))
	})

	t.Run("error banner keeps the list", func(t *testing.T) {
		var out bytes.Buffer
		r := newTestRenderer(&out)

		require.NoError(t, r.Render(&TransactionsView{Transactions: sampleTransactions()[:1], Err: "Block not found", Cursor: -1}))

		assert.True(t, strings.HasPrefix(out.String(), "Error: Block not found"))
		assert.Contains(t, out.String(), "0xaaaaaaaa...")
	})

	t.Run("empty and loading states", func(t *testing.T) {
		var out bytes.Buffer
		r := newTestRenderer(&out)

		require.NoError(t, r.Render(&TransactionsView{}))
		assert.Equal(t, EmptyMessage+"\n", out.String())

		out.Reset()
		require.NoError(t, r.Render(&TransactionsView{Loading: true}))
		assert.Equal(t, "Loading...\n", out.String())
	})

	t.Run("json output", func(t *testing.T) {
		var out bytes.Buffer
		r := newTestRenderer(&out)

		require.NoError(t, r.RenderEncoded(config.OutputJSON, sampleTransactions()[1:]))
		assert.Contains(t, out.String(), `"tx_hash": "`+hashB+`"`)
		assert.Contains(t, out.String(), `"index": 1`)

		out.Reset()
		require.NoError(t, r.RenderEncoded(config.OutputJSON, nil))
		assert.Equal(t, "[]\n", out.String())
	})

	t.Run("yaml output", func(t *testing.T) {
		var out bytes.Buffer
		r := newTestRenderer(&out)

		require.NoError(t, r.RenderEncoded(config.OutputYAML, sampleTransactions()[1:]))
		assert.Contains(t, out.String(), "tx_hash:")
		assert.Contains(t, out.String(), hashB)
	})

	t.Run("table format is rejected by Encode", func(t *testing.T) {
		assert.Error(t, Encode(&bytes.Buffer{}, config.OutputTable, nil))
	})
}
