package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

func TestBuildSearch(t *testing.T) {
	tests := []struct {
		name   string
		params models.SearchParams
		want   string
	}{
		{
			name:   "blocks only",
			params: models.SearchParams{Blocks: "10:latest"},
			want:   "mevlog search -b 10:latest",
		},
		{
			name:   "empty blocks default to latest range",
			params: models.SearchParams{},
			want:   "mevlog search -b latest:latest",
		},
		{
			name:   "whitespace values are skipped",
			params: models.SearchParams{Blocks: "  ", Position: " ", From: "\t", Event: "  "},
			want:   "mevlog search -b latest:latest",
		},
		{
			name: "all flags in order",
			params: models.SearchParams{
				Blocks:        "100:latest",
				Position:      "0:5",
				ChainID:       "8453",
				From:          "jaredfromsubway.eth",
				To:            "CREATE",
				Event:         "/(Swap).+/",
				NotEvent:      "Approval(address,address,uint256)",
				Method:        "transfer",
				ERC20Transfer: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48|ge100000",
				TxCost:        "ge0.01ether",
				GasPrice:      "ge2gwei",
			},
			want: "mevlog search -b 100:latest -p 0:5 --chain-id 8453 --from jaredfromsubway.eth --to CREATE" +
				" --event /(Swap).+/ --not-event Approval(address,address,uint256) --method transfer" +
				" --erc20-transfer 0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48|ge100000 --tx-cost ge0.01ether --gas-price ge2gwei",
		},
		{
			name:   "values are trimmed",
			params: models.SearchParams{Blocks: " 5:10 ", From: " 0xabc "},
			want:   "mevlog search -b 5:10 --from 0xabc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(ModeSearch, Params{SearchParams: tt.params}))
		})
	}
}

func TestBuildExplore(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "known block",
			params: Params{BlockNumber: "100"},
			want:   "mevlog search -b 100",
		},
		{
			name:   "changing chain shows latest",
			params: Params{BlockNumber: "100", IsChangingChain: true},
			want:   "mevlog search -b latest",
		},
		{
			name:   "unknown block shows latest",
			params: Params{},
			want:   "mevlog search -b latest",
		},
		{
			name:   "with chain id",
			params: Params{BlockNumber: "22000000", SearchParams: models.SearchParams{ChainID: "1"}},
			want:   "mevlog search -b 22000000 --chain-id 1",
		},
		{
			name:   "search-only fields are ignored",
			params: Params{BlockNumber: "7", SearchParams: models.SearchParams{From: "0xabc", Blocks: "1:2"}},
			want:   "mevlog search -b 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(ModeExplore, tt.params))
		})
	}
}
