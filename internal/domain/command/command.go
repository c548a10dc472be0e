// Package command renders the mevlog CLI invocation equivalent to the
// current search or explore state.
package command

import (
	"strings"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// Mode selects which command shape is rendered
type Mode string

const (
	ModeSearch  Mode = "search"
	ModeExplore Mode = "explore"
)

// Params is the parameter bag for Build. Explore mode only reads
// ChainID, BlockNumber and IsChangingChain.
type Params struct {
	models.SearchParams

	// BlockNumber is the explored block. Empty or "latest" means unknown.
	BlockNumber     string
	IsChangingChain bool
}

// flag pairs a CLI flag with the form value it renders
type flag struct {
	name  string
	value func(p *Params) string
}

var searchFlags = []flag{
	{"-p", func(p *Params) string { return p.Position }},
	{"--chain-id", func(p *Params) string { return p.ChainID }},
	{"--from", func(p *Params) string { return p.From }},
	{"--to", func(p *Params) string { return p.To }},
	{"--event", func(p *Params) string { return p.Event }},
	{"--not-event", func(p *Params) string { return p.NotEvent }},
	{"--method", func(p *Params) string { return p.Method }},
	{"--erc20-transfer", func(p *Params) string { return p.ERC20Transfer }},
	{"--tx-cost", func(p *Params) string { return p.TxCost }},
	{"--gas-price", func(p *Params) string { return p.GasPrice }},
}

// Build renders the command string for mode
func Build(mode Mode, p Params) string {
	if mode == ModeExplore {
		return buildExplore(p)
	}
	return buildSearch(p)
}

func buildSearch(p Params) string {
	var b strings.Builder
	b.WriteString("mevlog search -b ")

	blocks := strings.TrimSpace(p.Blocks)
	if blocks == "" {
		blocks = "latest:latest"
	}
	b.WriteString(blocks)

	for _, f := range searchFlags {
		v := strings.TrimSpace(f.value(&p))
		if v == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(f.name)
		b.WriteString(" ")
		b.WriteString(v)
	}
	return b.String()
}

func buildExplore(p Params) string {
	block := strings.TrimSpace(p.BlockNumber)
	if p.IsChangingChain || block == "" {
		block = "latest"
	}

	cmd := "mevlog search -b " + block
	if chainID := strings.TrimSpace(p.ChainID); chainID != "" {
		cmd += " --chain-id " + chainID
	}
	return cmd
}
