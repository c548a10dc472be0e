package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// collectedTranscript keeps stream lines for json/yaml output
type collectedTranscript struct {
	mu    sync.Mutex
	lines []string
}

func (c *collectedTranscript) Line(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, text)
}

// txStreamOutput is the encoded result of trace and inspect
type txStreamOutput struct {
	TxHash       string               `json:"tx_hash" yaml:"tx_hash"`
	Lines        []string             `json:"lines" yaml:"lines"`
	Transactions []models.Transaction `json:"transactions,omitempty" yaml:"transactions,omitempty"`
	Error        string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewTraceCmd creates the trace command
func NewTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <tx-hash>",
		Short: "Stream the execution trace of a transaction",
		Example: `  mevlog-viewer trace 0x06fd8a5ebbd1a4d2ae29d4d1b2b5e9a4b3e7a7e1c2f1d7b0a2b9c3d4e5f60718
  mevlog-viewer trace <tx-hash> --rpc-url https://eth.llamarpc.com`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationStreaming: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			return runTxStream(cmd, app.Config, models.StreamTrace, args[0], nil, func(t usecase.Transcript) (*usecase.TxStreamResult, error) {
				return app.TraceTransaction.Run(cmd.Context(), usecase.TraceTransactionParams{
					Query:      models.TraceParams{TxHash: args[0]},
					Transcript: t,
				})
			})
		},
	}

	return cmd
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var (
		query models.InspectParams
		view  viewFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect <tx-hash>",
		Short: "Stream a transaction with its neighbours in the block",
		Example: `  # The transaction and the two before it
  mevlog-viewer inspect <tx-hash> --before 2`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationStreaming: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			sortCfg, err := view.sortConfig()
			if err != nil {
				return err
			}

			state := viewer.NewState()
			unsubscribe := app.Hub.Subscribe(state)
			defer unsubscribe()

			query.TxHash = args[0]
			return runTxStream(cmd, app.Config, models.StreamInspect, args[0], state, func(t usecase.Transcript) (*usecase.TxStreamResult, error) {
				result, err := app.InspectTransaction.Run(cmd.Context(), usecase.InspectTransactionParams{
					Query:      query,
					Transcript: t,
				})
				if err != nil || app.Config.Output != config.OutputTable || state.Len() == 0 && state.Err() == "" {
					return result, err
				}
				return result, renderTransactions(cmd, app, state, listOutput{
					sort:       sortCfg,
					expand:     view.expand,
					showBlocks: true,
				})
			})
		},
	}

	cmd.Flags().StringVar(&query.Before, "before", "", "Number of transactions before the target to include")
	cmd.Flags().StringVar(&query.After, "after", "", "Number of transactions after the target to include")
	cmd.Flags().BoolVar(&query.Reverse, "reverse", false, "Reverse the result order")
	view.register(cmd.Flags())

	return cmd
}

// runTxStream prints a per-transaction stream as a transcript, or collects
// it for json/yaml output
func runTxStream(
	cmd *cobra.Command,
	cfg *config.RuntimeConfig,
	kind models.StreamKind,
	txHash string,
	state *viewer.State,
	run func(usecase.Transcript) (*usecase.TxStreamResult, error),
) error {
	if cfg.Output == config.OutputTable {
		transcript := render.NewTranscriptRenderer(cmd.OutOrStdout())
		transcript.Header(kind, txHash)
		result, err := run(transcript)
		if err != nil {
			return err
		}
		transcript.Summary(result.Stats)
		return nil
	}

	collected := &collectedTranscript{}
	result, err := run(collected)
	if err != nil {
		return err
	}

	out := txStreamOutput{TxHash: result.TxHash, Lines: collected.lines}
	if out.Lines == nil {
		out.Lines = []string{}
	}
	if state != nil {
		out.Transactions = state.Transactions()
	}
	if result.Stats != nil {
		out.Error = result.Stats.LastError
	}
	if err := render.Encode(cmd.OutOrStdout(), cfg.Output, out); err != nil {
		return fmt.Errorf("failed to encode %s result: %w", kind, err)
	}
	return nil
}
