package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/app"
	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// listOutput describes how a finished transaction list is printed
type listOutput struct {
	sort       models.SortConfig
	expand     bool
	showBlocks bool
	command    string
	url        string
}

// renderTransactions prints the state collected from a query
func renderTransactions(cmd *cobra.Command, app *app.App, state *viewer.State, opts listOutput) error {
	out := cmd.OutOrStdout()
	txs := state.Sorted(opts.sort)
	r := render.NewTransactionsRenderer(out, app.Config)

	if app.Config.Output != config.OutputTable {
		if msg := state.Err(); msg != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), render.FormatError(msg))
		}
		return r.RenderEncoded(app.Config.Output, txs)
	}

	expanded := map[string]bool{}
	if opts.expand {
		expanded = lo.SliceToMap(txs, func(tx models.Transaction) (string, bool) { return tx.TxHash, true })
	}

	if err := r.Render(&render.TransactionsView{
		Transactions:     txs,
		Sort:             opts.sort,
		Err:              state.Err(),
		ShowBlockNumbers: opts.showBlocks,
		Expanded:         expanded,
		Cursor:           -1,
	}); err != nil {
		return err
	}

	fmt.Fprintln(out)
	return render.NewCommandRenderer(out, app.Config.BaseURL, printURL(cmd)).Render(opts.command, opts.url)
}

// transcriptWriter is where raw stream text goes; stdout is kept for the
// encoded result in json/yaml mode
func transcriptWriter(cmd *cobra.Command, cfg *config.RuntimeConfig) io.Writer {
	if cfg.Output != config.OutputTable {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
