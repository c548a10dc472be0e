package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBatch(t *testing.T) {
	t.Run("array of transactions", func(t *testing.T) {
		raw := `[
			{"tx_hash": "0xaa", "block_number": 100, "index": 0, "gas_price": 21000000000, "tx_cost": "0.0012", "success": true},
			{"tx_hash": "0xbb", "block_number": 100, "index": "1", "gas_price": "30000000000", "tx_cost": 0.5, "success": false,
			 "log_groups": [{"source": "0xc0ffee", "logs": [{"signature": "Transfer(address,address,uint256)", "topics": ["0x01"], "data": "0x02"}]}]}
		]`

		batch, err := ParseBatch([]byte(raw))
		require.NoError(t, err)
		assert.False(t, batch.IsError())
		require.Len(t, batch.Transactions, 2)

		first := batch.Transactions[0]
		assert.Equal(t, "0xaa", first.TxHash)
		assert.Equal(t, uint64(100), first.BlockNumber)
		assert.Equal(t, Quantity("21000000000"), first.GasPrice)
		assert.Equal(t, 0.0012, first.TxCost.Float())

		second := batch.Transactions[1]
		assert.Equal(t, int64(1), second.Index.Int())
		assert.Equal(t, 0.5, second.TxCost.Float())
		require.Len(t, second.LogGroups, 1)
		assert.Equal(t, "0xc0ffee", second.LogGroups[0].DisplaySource())
		assert.Equal(t, []string{"0x01"}, second.LogGroups[0].Logs[0].Topics)
	})

	t.Run("single transaction object", func(t *testing.T) {
		batch, err := ParseBatch([]byte(`{"tx_hash": "0xaa", "block_number": 7}`))
		require.NoError(t, err)
		require.Len(t, batch.Transactions, 1)
		assert.Equal(t, uint64(7), batch.Transactions[0].BlockNumber)
	})

	t.Run("error object", func(t *testing.T) {
		batch, err := ParseBatch([]byte(`{"error": "Authentication required"}`))
		require.NoError(t, err)
		assert.True(t, batch.IsError())
		assert.Equal(t, "Authentication required", batch.Error)
		assert.Empty(t, batch.Transactions)
	})

	t.Run("bare json string is an error", func(t *testing.T) {
		batch, err := ParseBatch([]byte(`"Failed to get chain info for chain_id 999"`))
		require.NoError(t, err)
		assert.Equal(t, "Failed to get chain info for chain_id 999", batch.Error)
	})

	t.Run("empty array is a valid empty batch", func(t *testing.T) {
		batch, err := ParseBatch([]byte(`[]`))
		require.NoError(t, err)
		assert.False(t, batch.IsError())
		assert.Empty(t, batch.Transactions)
	})

	for _, raw := range []string{"", "Processing block 123...", "42", `{"foo": 1}`, `[1, 2`} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := ParseBatch([]byte(raw))
			assert.ErrorIs(t, err, ErrNotBatch)
		})
	}
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, 0.0, Quantity("").Float())
	assert.Equal(t, 0.0, Quantity("abc").Float())
	assert.Equal(t, 1.5, Quantity(" 1.5 ").Float())
	assert.Equal(t, int64(3), Quantity("3").Int())
	assert.Equal(t, int64(3), Quantity("3.9").Int())
	assert.Equal(t, int64(0), Quantity("x").Int())

	out, err := Quantity("42").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "42", string(out))

	out, err = Quantity("0.01 ETH").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"0.01 ETH"`, string(out))
}

func TestTransactionEnrich(t *testing.T) {
	price := 3100.5
	tx := Transaction{TxHash: "0xaa", BlockNumber: 1}
	tx.Enrich(nil)
	assert.Zero(t, tx.ChainID)

	tx.Enrich(&ChainInfo{ChainID: 1, Name: "Ethereum Mainnet", ExplorerURL: "https://etherscan.io", CurrentTokenPrice: &price})
	assert.Equal(t, uint64(1), tx.ChainID)
	assert.Equal(t, "Ethereum Mainnet", tx.ChainName)
	assert.Equal(t, "https://etherscan.io", tx.ExplorerURL)
	require.NotNil(t, tx.NativeTokenPrice)
	assert.Equal(t, price, *tx.NativeTokenPrice)
	assert.Equal(t, "1-0xaa", tx.Key())
}
