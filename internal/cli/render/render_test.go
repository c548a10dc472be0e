package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

func TestCommandRenderer(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, NewCommandRenderer(&out, "https://mevlog.rs", false).
		Render("mevlog search -b latest --chain-id 1", "/explore"))
	assert.Equal(t, "CLI: mevlog search -b latest --chain-id 1\n", out.String())

	out.Reset()
	require.NoError(t, NewCommandRenderer(&out, "https://mevlog.rs", true).
		Render("mevlog search -b 10:latest", "/search?blocks=10%3Alatest"))
	assert.Equal(t, "CLI: mevlog search -b 10:latest\nURL: https://mevlog.rs/search?blocks=10%3Alatest\n", out.String())
}

func TestChainsRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewChainsRenderer(&out)

	require.NoError(t, r.Render(&usecase.ListChainsResult{Chains: models.DefaultChains[:2], Defaults: true}))
	assert.Contains(t, out.String(), "Popular chains")
	assert.Contains(t, out.String(), "OP Mainnet")

	out.Reset()
	require.NoError(t, r.Render(&usecase.ListChainsResult{}))
	assert.Equal(t, "No chains found\n", out.String())
}

func TestChainInfoRenderer(t *testing.T) {
	var out bytes.Buffer
	price := 0.25

	require.NoError(t, NewChainInfoRenderer(&out).Render(&models.ChainInfo{
		ChainID: 137, Name: "Polygon Mainnet", Currency: "POL", CurrentTokenPrice: &price,
	}))
	assert.Contains(t, out.String(), "Polygon Mainnet (ID: 137)")
	assert.Contains(t, out.String(), "Explorer:    (none)")
	assert.Contains(t, out.String(), "Token price: $0.25")
}

func TestConfigRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewConfigRenderer(&out)

	require.NoError(t, r.RenderConfig(&usecase.ShowConfigResult{
		Config:     &config.LocalConfig{ChainID: 137, LastSearch: "/search?blocks=latest"},
		Runtime:    &config.RuntimeConfig{ChainID: 137, BaseURL: "https://mevlog.rs"},
		ConfigPath: "/tmp/mevlog/config.local.json",
		Exists:     true,
	}))
	s := out.String()
	assert.Contains(t, s, "Chain ID: 137")
	assert.Contains(t, s, "Base URL: (not set)")
	assert.Contains(t, s, "Last search:  /search?blocks=latest")
	assert.Contains(t, s, "chain 137 via https://mevlog.rs")
	assert.Contains(t, s, "config file: /tmp/mevlog/config.local.json")

	out.Reset()
	require.NoError(t, r.RenderRemove(&usecase.RemoveConfigResult{Key: config.ConfigKeyRPCURL, ConfigPath: "/tmp/c.json"}))
	assert.Contains(t, out.String(), "✅ Removed rpc_url")

	out.Reset()
	require.NoError(t, r.RenderSet(&usecase.SetConfigResult{Key: config.ConfigKeyChainID, Value: "137", ConfigPath: "/tmp/c.json"}))
	assert.Contains(t, out.String(), "✅ Set chain_id to: 137")
	assert.Contains(t, out.String(), "config saved to: /tmp/c.json")
}

func TestTranscriptRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewTranscriptRenderer(&out)

	r.Header(models.StreamTrace, "0xabc")
	r.Line("CALL 0x1111 -> 0x2222")
	r.Summary(&usecase.StreamStats{RawLines: 1200, Batches: 1, Transactions: 3})

	assert.Equal(t, "🔎 Trace 0xabc\nCALL 0x1111 -> 0x2222\nDone: 1,201 message(s), 3 transaction(s)\n", out.String())
}
