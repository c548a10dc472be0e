// Package tui contains the interactive block explorer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/pawurb/mevlog-viewer/internal/app"
	"github.com/pawurb/mevlog-viewer/internal/chainselect"
	"github.com/pawurb/mevlog-viewer/internal/cli/render"
	"github.com/pawurb/mevlog-viewer/internal/debounce"
	"github.com/pawurb/mevlog-viewer/internal/domain"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// chrome is the number of lines around the table
const chrome = 12

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	focusColor   = color.New(color.FgCyan)
	helpColor    = color.New(color.FgYellow)
	statusColor  = color.New(color.FgHiBlack)
	noticeColor  = color.New(color.FgYellow)
	commandColor = color.New(color.FgGreen)
)

// ExplorerOptions configures the explorer session
type ExplorerOptions struct {
	// Block nil starts at the latest block
	Block    *uint64
	Sort     models.SortConfig
	PrintURL bool
}

// Deps are the collaborators of the explorer
type Deps struct {
	Config    *config.RuntimeConfig
	Hub       *viewer.Hub
	Registry  usecase.ChainRegistry
	ChainInfo usecase.ChainInfoFetcher
	Explorer  usecase.BlockExplorer
	Store     usecase.LocalConfigRepository
	Logger    *slog.Logger

	// Clock drives the chain lookup debounce; nil uses wall time
	Clock debounce.Clock
}

// Explorer is the bubbletea model of the block explorer
type Explorer struct {
	ctx      context.Context
	cfg      *config.RuntimeConfig
	log      *slog.Logger
	opts     ExplorerOptions
	explore  *usecase.ExploreBlock
	state    *viewer.State
	chains   *chainselect.Selector
	renderer *render.TransactionsRenderer

	unsubscribe func()

	chainID      uint64
	pendingChain *uint64
	block        *uint64
	sort         models.SortConfig
	cursor       int
	offset       int
	expanded     map[string]bool

	// replaceOnType makes the first keystroke replace the committed chain name
	replaceOnType bool

	loading bool
	loadSeq int
	cancel  context.CancelFunc
	// hubGen is the newest hub generation seen
	hubGen uint64

	status  string
	notice  string
	command string
	url     string

	width  int
	height int
}

// NewExplorer creates the explorer model. send delivers messages to the
// running program and may be called from any goroutine.
func NewExplorer(ctx context.Context, deps Deps, opts ExplorerOptions, send func(tea.Msg)) *Explorer {
	m := &Explorer{
		ctx:      ctx,
		cfg:      deps.Config,
		log:      deps.Logger.With("component", "explorer"),
		opts:     opts,
		state:    viewer.NewState(),
		renderer: render.NewTransactionsRenderer(io.Discard, deps.Config),
		chainID:  deps.Config.ChainID,
		block:    opts.Block,
		sort:     opts.Sort,
		expanded: make(map[string]bool),
	}
	if m.chainID == 0 {
		m.chainID = models.DefaultChainID
	}

	m.explore = usecase.NewExploreBlock(deps.Config, deps.Explorer, deps.ChainInfo, deps.Hub, deps.Store, progressBridge{send: send}, deps.Logger)
	m.unsubscribe = deps.Hub.Subscribe(hubBridge{send: send})

	m.chains = chainselect.New(chainselect.Options{
		Lister:   deps.Registry,
		Dispatch: func(f func()) { send(dispatchMsg(f)) },
		OnChange: func(id uint64) { m.pendingChain = &id },
		Debounce: deps.Config.Debounce,
		Clock:    deps.Clock,
		Context:  ctx,
		Logger:   deps.Logger,
	})
	m.chains.SetInitial(m.chainID)

	return m
}

// Close stops background work owned by the model
func (m *Explorer) Close() {
	if m.cancel != nil {
		m.cancel()
	}
	m.chains.Close()
	m.unsubscribe()
}

// Init loads the starting block together with the chain info
func (m *Explorer) Init() tea.Cmd {
	return m.load(m.block, false, true)
}

// Update handles messages and updates the model
func (m *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampCursor()

	case tea.KeyMsg:
		if m.chains.HasFocus() {
			return m, m.selectorKey(msg)
		}
		return m, m.key(msg)

	case batchMsg:
		if !m.current(msg.gen) {
			return m, nil
		}
		if msg.route == viewer.RouteAppend {
			m.state.Append(msg.batch)
		} else {
			m.state.Replace(msg.batch)
		}
		m.clampCursor()

	case clearMsg:
		if !m.current(msg.gen) {
			return m, nil
		}
		m.state.Clear()
		m.cursor, m.offset = 0, 0
		m.expanded = make(map[string]bool)

	case chainInfoMsg:
		if !m.current(msg.gen) {
			return m, nil
		}
		m.state.SetChainInfo(msg.info)

	case progressMsg:
		if msg.Stage == usecase.StageCompleted {
			m.status = ""
		} else {
			m.status = msg.Message
		}

	case noticeMsg:
		m.notice = string(msg)

	case dispatchMsg:
		msg()

	case exploreDoneMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.state.SetError(msg.err.Error())
			return m, nil
		}
		m.block = msg.result.Block
		m.command = msg.result.Command
		m.url = msg.result.URL
		if msg.result.ChainInfoErr != nil {
			m.notice = msg.result.ChainInfoErr.Error()
		}
	}

	return m, nil
}

// current reports whether a hub delivery for gen should be applied and
// adopts it as the newest generation
func (m *Explorer) current(gen uint64) bool {
	if gen < m.hubGen {
		return false
	}
	m.hubGen = gen
	return true
}

// key handles keys while the table has focus
func (m *Explorer) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "c", "/":
		m.chains.Focus()
		_, committed := m.chains.Selected()
		m.replaceOnType = committed
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()
	case "down", "j":
		if m.cursor < m.state.Len()-1 {
			m.cursor++
		}
		m.clampCursor()
	case "enter", " ":
		txs := m.state.Sorted(m.sort)
		if m.cursor < len(txs) {
			hash := txs[m.cursor].TxHash
			m.expanded[hash] = !m.expanded[hash]
		}
	case "left", "h", "p":
		prev, ok := usecase.PrevBlock(m.block)
		if !ok {
			if m.block == nil {
				m.notice = domain.ErrNoBlock.Error()
			} else {
				m.notice = "Already at the genesis block"
			}
			return nil
		}
		return m.load(&prev, false, false)
	case "right", "l", "n":
		next, ok := usecase.NextBlock(m.block)
		if !ok {
			m.notice = domain.ErrNoBlock.Error()
			return nil
		}
		return m.load(&next, false, false)
	case "r":
		return m.load(nil, false, false)
	case "1":
		m.sort = m.sort.Toggle(models.SortIndex)
	case "2":
		m.sort = m.sort.Toggle(models.SortGasPrice)
	case "3":
		m.sort = m.sort.Toggle(models.SortTxCost)
	case "0":
		m.sort = models.SortConfig{}
	case "x", "esc":
		m.state.DismissError()
		m.notice = ""
	}
	return nil
}

// selectorKey routes keys to the chain selector while it has focus
func (m *Explorer) selectorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		if !m.chains.Key(chainselect.KeyEscape) {
			m.chains.Blur()
		}
		m.restoreChainText()
		return nil
	case tea.KeyUp:
		m.chains.Key(chainselect.KeyUp)
		return nil
	case tea.KeyDown, tea.KeyTab:
		m.chains.Key(chainselect.KeyDown)
		return nil
	case tea.KeyEnter:
		if !m.chains.Key(chainselect.KeyEnter) {
			m.chains.Blur()
			m.restoreChainText()
			return nil
		}
		if m.pendingChain == nil {
			return nil
		}
		id := *m.pendingChain
		m.pendingChain = nil
		m.chains.Blur()
		m.chainID = id
		m.block = nil
		return m.load(nil, true, true)
	case tea.KeyBackspace:
		text := []rune(m.chains.Text())
		if m.replaceOnType || len(text) == 0 {
			text = nil
		} else {
			text = text[:len(text)-1]
		}
		m.replaceOnType = false
		m.chains.Input(string(text))
		return nil
	case tea.KeyRunes, tea.KeySpace:
		text := m.chains.Text()
		if m.replaceOnType {
			text = ""
			m.replaceOnType = false
		}
		m.chains.Input(text + string(msg.Runes))
		return nil
	}
	return nil
}

// restoreChainText shows the active chain again after an abandoned edit
func (m *Explorer) restoreChainText() {
	if entry, ok := m.chains.Selected(); ok && entry.ChainID == m.chainID {
		return
	}
	m.chains.SetInitial(m.chainID)
}

// load starts a new explore request and cancels the one in flight
func (m *Explorer) load(block *uint64, chainChanged, withChainInfo bool) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.loadSeq++
	m.loading = true
	m.notice = ""

	seq := m.loadSeq
	explore := m.explore
	params := usecase.ExploreBlockParams{
		ChainID:       m.chainID,
		Block:         block,
		ChainChanged:  chainChanged,
		WithChainInfo: withChainInfo,
	}
	m.log.Debug("loading block", "chain_id", params.ChainID, "block", block, "chain_changed", chainChanged)

	return func() tea.Msg {
		result, err := explore.Run(ctx, params)
		return exploreDoneMsg{seq: seq, result: result, err: err}
	}
}

// visibleRows is the number of table rows that fit the window
func (m *Explorer) visibleRows() int {
	if m.height == 0 {
		return m.state.Len()
	}
	return max(m.height-chrome, 1)
}

func (m *Explorer) clampCursor() {
	n := m.state.Len()
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset > max(n-rows, 0) {
		m.offset = max(n-rows, 0)
	}
}

// View renders the UI
func (m *Explorer) View() string {
	var b strings.Builder

	b.WriteString(titleColor.Sprint(m.title()))
	b.WriteString("\n\n")

	b.WriteString(m.selectorView())

	switch {
	case m.status != "":
		b.WriteString(statusColor.Sprint(m.status))
	case m.loading:
		b.WriteString(statusColor.Sprint("Loading..."))
	}
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeColor.Sprint(m.notice))
	}
	b.WriteString("\n")

	txs := m.state.Sorted(m.sort)
	end := min(m.offset+m.visibleRows(), len(txs))
	window := txs[min(m.offset, end):end]
	b.WriteString(m.renderer.String(&render.TransactionsView{
		Transactions: window,
		Sort:         m.sort,
		Err:          m.state.Err(),
		Loading:      m.loading,
		Expanded:     m.expanded,
		Cursor:       m.cursor - m.offset,
	}))
	if len(txs) > len(window) {
		b.WriteString(statusColor.Sprintf("%d-%d of %d\n", m.offset+1, end, len(txs)))
	}

	b.WriteString("\n")
	if m.command != "" {
		b.WriteString(commandColor.Sprint("CLI: " + m.command))
		b.WriteString("\n")
		if m.opts.PrintURL {
			b.WriteString("URL: " + m.cfg.BaseURL + m.url + "\n")
		}
	}

	b.WriteString("\n")
	if m.chains.HasFocus() {
		b.WriteString(helpColor.Sprint("type: filter  ↑/↓: move  Enter: switch chain  Esc: cancel\n"))
	} else {
		b.WriteString(helpColor.Sprint("↑/↓: move  Enter: details  ←/→: block  1/2/3: sort  c: chain  r: latest  q: quit\n"))
	}

	return b.String()
}

func (m *Explorer) title() string {
	chain := fmt.Sprintf("Chain %d", m.chainID)
	if info := m.state.ChainInfo(); info != nil && info.ChainID == m.chainID {
		chain = fmt.Sprintf("%s (ID: %d)", info.Name, info.ChainID)
	}
	block := "latest block"
	if m.block != nil {
		block = "block #" + render.FormatNumber(*m.block)
	}
	return fmt.Sprintf("📦 %s on %s", block, chain)
}

func (m *Explorer) selectorView() string {
	var b strings.Builder

	label := "Chain: "
	text := m.chains.Text()
	if m.chains.HasFocus() {
		b.WriteString(focusColor.Sprint(label + text + "▏"))
	} else {
		b.WriteString(label + text)
	}
	if m.chains.State() == chainselect.Querying {
		b.WriteString(statusColor.Sprint("  searching..."))
	}
	b.WriteString("\n")

	if err := m.chains.Err(); err != nil {
		b.WriteString(noticeColor.Sprint("  Failed to load available chains"))
		b.WriteString("\n")
	}

	if m.chains.HasFocus() && m.chains.IsOpen() {
		for i, entry := range m.chains.Candidates() {
			cursor := " "
			line := entry.DisplayName()
			if i == m.chains.FocusedIndex() {
				cursor = focusColor.Sprint("▸")
				line = focusColor.Sprint(line)
			}
			fmt.Fprintf(&b, "  %s %s\n", cursor, line)
		}
	}
	b.WriteString("\n")

	return b.String()
}

// Command is the CLI equivalent of the block on screen
func (m *Explorer) Command() string { return m.command }

// URL is the web path of the block on screen
func (m *Explorer) URL() string { return m.url }

// RunExplorer runs the explorer until the user quits, then prints the CLI
// equivalent of the last block to out
func RunExplorer(ctx context.Context, a *app.App, opts ExplorerOptions, out io.Writer) error {
	var p *tea.Program
	send := func(msg tea.Msg) { p.Send(msg) }

	m := NewExplorer(ctx, Deps{
		Config:    a.Config,
		Hub:       a.Hub,
		Registry:  a.Registry,
		ChainInfo: a.ChainInfo,
		Explorer:  a.Explorer,
		Store:     a.ConfigStore,
		Logger:    a.Logger,
	}, opts, send)
	defer m.Close()

	p = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("explorer failed: %w", err)
	}

	if m.Command() != "" {
		return render.NewCommandRenderer(out, a.Config.BaseURL, opts.PrintURL).Render(m.Command(), m.URL())
	}
	return nil
}
