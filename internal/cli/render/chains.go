package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// ChainsRenderer renders chain registry lookups
type ChainsRenderer struct {
	out io.Writer
}

// NewChainsRenderer creates a new chains renderer
func NewChainsRenderer(out io.Writer) *ChainsRenderer {
	return &ChainsRenderer{out: out}
}

// Render renders the chain list
func (r *ChainsRenderer) Render(result *usecase.ListChainsResult) error {
	if len(result.Chains) == 0 {
		fmt.Fprintln(r.out, "No chains found")
		return nil
	}

	if result.Defaults {
		fmt.Fprintln(r.out, "🌐 Popular chains:")
	} else {
		fmt.Fprintf(r.out, "🌐 Found %d chain(s):\n", len(result.Chains))
	}
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"ID", "Name", "Chain"})
	for _, c := range result.Chains {
		t.AppendRow(table.Row{
			color.New(color.FgCyan).Sprint(strconv.FormatUint(c.ChainID, 10)),
			c.Name,
			c.Chain,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// ChainInfoRenderer renders the metadata of one chain
type ChainInfoRenderer struct {
	out io.Writer
}

// NewChainInfoRenderer creates a new chain info renderer
func NewChainInfoRenderer(out io.Writer) *ChainInfoRenderer {
	return &ChainInfoRenderer{out: out}
}

// Render renders the chain info
func (r *ChainInfoRenderer) Render(info *models.ChainInfo) error {
	fmt.Fprintf(r.out, "🔗 %s (ID: %d)\n", info.Name, info.ChainID)
	fmt.Fprintf(r.out, "Currency:    %s\n", info.Currency)
	if info.ExplorerURL != "" {
		fmt.Fprintf(r.out, "Explorer:    %s\n", info.ExplorerURL)
	} else {
		fmt.Fprintf(r.out, "Explorer:    %s\n", "(none)")
	}
	if info.CurrentTokenPrice != nil {
		fmt.Fprintf(r.out, "Token price: %s\n", FormatPrice(*info.CurrentTokenPrice))
	}
	return nil
}
