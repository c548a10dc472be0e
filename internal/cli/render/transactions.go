package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

const (
	EmptyMessage  = "No data available"
	detailsIndent = "    "
	separator     = "- - - - - - - - - - - - - - - - - - - -"
)

var (
	sortKeyColor = color.New(color.FgWhite, color.Bold)
	sigColor     = color.New(color.FgHiYellow)
	labelColor   = color.New(color.FgGreen)
	linkColor    = color.New(color.FgHiBlue)
	dimColor     = color.New(color.FgHiBlack)
	okColor      = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed)
)

// TransactionsView is everything needed to draw a transaction list
type TransactionsView struct {
	Transactions []models.Transaction
	Sort         models.SortConfig
	Err          string
	Loading      bool

	// ShowBlockNumbers is false in the single block explorer
	ShowBlockNumbers bool

	// Expanded holds the hashes whose details are shown
	Expanded map[string]bool

	// Cursor highlights one row; -1 for none
	Cursor int
}

// TransactionsRenderer draws transaction lists as tables with optional
// expanded details
type TransactionsRenderer struct {
	out        io.Writer
	color      bool
	hyperlinks bool
}

// NewTransactionsRenderer creates a new transactions renderer
func NewTransactionsRenderer(out io.Writer, cfg *config.RuntimeConfig) *TransactionsRenderer {
	return &TransactionsRenderer{
		out:        out,
		color:      cfg.Color,
		hyperlinks: cfg.Hyperlinks,
	}
}

// Render writes the view to the output
func (r *TransactionsRenderer) Render(view *TransactionsView) error {
	_, err := fmt.Fprint(r.out, r.String(view))
	return err
}

// RenderEncoded writes the transactions as JSON or YAML
func (r *TransactionsRenderer) RenderEncoded(format config.OutputFormat, txs []models.Transaction) error {
	if txs == nil {
		txs = []models.Transaction{}
	}
	return Encode(r.out, format, txs)
}

// String renders the view
func (r *TransactionsRenderer) String(view *TransactionsView) string {
	var b strings.Builder

	if view.Err != "" {
		b.WriteString(r.paint(failColor, "Error: "+view.Err))
		b.WriteString("\n\n")
	}

	if len(view.Transactions) == 0 {
		if view.Loading {
			b.WriteString("Loading...\n")
		} else {
			b.WriteString(EmptyMessage + "\n")
		}
		return b.String()
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box.PaddingRight = "  "
	t.Style().Format.Header = text.FormatDefault

	header := table.Row{" "}
	if view.ShowBlockNumbers {
		header = append(header, "Block")
	}
	header = append(header,
		"Index"+r.sortIndicator(view.Sort, models.SortIndex),
		"Hash",
		"Signature",
		"Gas Price"+r.sortIndicator(view.Sort, models.SortGasPrice),
		"Gas Cost"+r.sortIndicator(view.Sort, models.SortTxCost),
		"Status",
	)
	t.AppendHeader(header)

	for i, tx := range view.Transactions {
		t.AppendRow(r.row(tx, view.ShowBlockNumbers, view.Expanded[tx.TxHash], i == view.Cursor))
	}

	// rows are single line; details are spliced in below their row
	lines := strings.Split(t.Render(), "\n")
	offset := len(lines) - len(view.Transactions)
	for i, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
		if i < offset {
			continue
		}
		if tx := view.Transactions[i-offset]; view.Expanded[tx.TxHash] {
			for _, detail := range strings.Split(r.Details(tx), "\n") {
				b.WriteString(detailsIndent + detail + "\n")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *TransactionsRenderer) row(tx models.Transaction, showBlock, expanded, current bool) table.Row {
	marker := "▼"
	if expanded {
		marker = "▲"
	}
	if current {
		marker = r.paint(sortKeyColor, ">") + marker
	}

	row := table.Row{marker}
	if showBlock {
		block := "#" + strconv.FormatUint(tx.BlockNumber, 10)
		row = append(row, r.link(block, "block", strconv.FormatUint(tx.BlockNumber, 10), tx.ExplorerURL))
	}

	hash := r.link(TruncateHash(tx.TxHash), "tx", tx.TxHash, tx.ExplorerURL)
	signature := TruncateSignature(tx.Signature)
	if expanded {
		hash = r.link(tx.TxHash, "tx", tx.TxHash, tx.ExplorerURL)
		signature = ""
	}

	cost := tx.DisplayTxCostUSD
	if cost == "" {
		cost = "$0"
	}

	return append(row,
		r.paint(dimColor, tx.Index.String()+":"),
		hash,
		signature,
		r.paint(labelColor, FormatGwei(tx.GasPrice.String())+" gwei"),
		r.paint(labelColor, cost),
		r.status(tx.Success),
	)
}

// Details renders the expanded view of one transaction
func (r *TransactionsRenderer) Details(tx models.Transaction) string {
	var b strings.Builder

	fmt.Fprintln(&b, r.paint(sigColor, tx.Signature))
	fmt.Fprintf(&b, "%s => %s\n", r.address(tx.From, tx.ExplorerURL), r.address(tx.To, tx.ExplorerURL))
	r.field(&b, "Gas Tx Cost", tx.DisplayTxCost)
	r.field(&b, "Gas Price", FormatGwei(tx.GasPrice.String())+" gwei")
	gasUsed := tx.GasUsed.String()
	if gasUsed == "" {
		gasUsed = "0"
	}
	r.field(&b, "Gas Used", gasUsed)
	r.field(&b, "Value", tx.DisplayValue)

	if len(tx.LogGroups) > 0 {
		fmt.Fprintln(&b, r.paint(dimColor, separator))
		for _, group := range tx.LogGroups {
			if source := group.DisplaySource(); source != "" {
				fmt.Fprintln(&b, r.address(source, tx.ExplorerURL))
			}
			for _, log := range group.Logs {
				emit := strings.TrimSpace("emit " + log.Signature + " " + log.Symbol)
				fmt.Fprintln(&b, r.paint(sigColor, emit))
				for _, topic := range log.Topics {
					fmt.Fprintln(&b, detailsIndent+r.paint(dimColor, topic))
				}
				for _, chunk := range ChunkHex(log.Data, HexChunkWidth) {
					fmt.Fprintln(&b, detailsIndent+r.paint(dimColor, chunk))
				}
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (r *TransactionsRenderer) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", r.paint(labelColor, label+":"), value)
}

func (r *TransactionsRenderer) address(address, explorerURL string) string {
	return r.paint(linkColor, ExplorerLink(address, "address", explorerURL, r.hyperlinks))
}

func (r *TransactionsRenderer) link(label, kind, target, explorerURL string) string {
	if !r.hyperlinks || explorerURL == "" || target == "" {
		return label
	}
	return Hyperlink(fmt.Sprintf("%s/%s/%s", strings.TrimRight(explorerURL, "/"), kind, target), label)
}

func (r *TransactionsRenderer) status(ok bool) string {
	if ok {
		return r.paint(okColor, "✓")
	}
	return r.paint(failColor, "✗")
}

func (r *TransactionsRenderer) sortIndicator(cfg models.SortConfig, key models.SortKey) string {
	if cfg.Key != key {
		return " " + r.paint(dimColor, "▲▼")
	}
	if cfg.Direction == models.SortDesc {
		return " " + r.paint(sortKeyColor, "▼")
	}
	return " " + r.paint(sortKeyColor, "▲")
}

func (r *TransactionsRenderer) paint(c *color.Color, s string) string {
	if !r.color || s == "" {
		return s
	}
	return c.Sprint(s)
}
