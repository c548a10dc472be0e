// Package chainselect implements the chain autocomplete: free text input,
// debounced registry lookups and keyboard navigation over the candidates.
package chainselect

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pawurb/mevlog-viewer/internal/debounce"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// DefaultDebounce is the quiet period before a lookup is sent
const DefaultDebounce = time.Second

// State is the observable phase of the selector
type State int

const (
	Idle State = iota
	Querying
	Open
	Selected
)

func (s State) String() string {
	switch s {
	case Querying:
		return "querying"
	case Open:
		return "open"
	case Selected:
		return "selected"
	default:
		return "idle"
	}
}

// Key is a navigation key understood by the dropdown
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyEnter
	KeyEscape
)

// ChainLister looks chains up in the registry
type ChainLister interface {
	ListChains(ctx context.Context, q models.ChainQuery) ([]models.ChainEntry, error)
}

// Options configures a Selector
type Options struct {
	Lister ChainLister

	// Dispatch runs f on the event loop. Lookup results are applied through
	// it. Nil runs f inline.
	Dispatch func(f func())

	// OnChange is called synchronously when a chain is selected
	OnChange func(chainID uint64)

	Debounce time.Duration
	Clock    debounce.Clock
	Defaults []models.ChainEntry
	Context  context.Context
	Logger   *slog.Logger
}

// Selector is the chain autocomplete state machine. All methods must be
// called from the event loop.
type Selector struct {
	lister   ChainLister
	dispatch func(func())
	onChange func(uint64)
	defaults []models.ChainEntry
	ctx      context.Context
	log      *slog.Logger

	debouncer *debounce.Debouncer

	text       string
	candidates []models.ChainEntry
	focused    int
	open       bool
	hasFocus   bool
	querying   bool
	selected   *models.ChainEntry
	err        error

	// seq identifies the latest scheduled lookup; older results are dropped
	seq uint64
}

// New creates a selector showing the default chains
func New(opts Options) *Selector {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Defaults == nil {
		opts.Defaults = models.DefaultChains
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(f func()) { f() }
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Selector{
		lister:     opts.Lister,
		dispatch:   opts.Dispatch,
		onChange:   opts.OnChange,
		defaults:   opts.Defaults,
		ctx:        opts.Context,
		log:        opts.Logger.With("component", "chainselect"),
		debouncer:  debounce.New(opts.Debounce, opts.Clock),
		candidates: opts.Defaults,
		focused:    -1,
	}
}

// Input replaces the query text
func (s *Selector) Input(text string) {
	s.text = text
	s.focused = -1
	s.cancelLookup()

	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		s.selected = nil
		s.candidates = s.defaults
		s.open = true
	case strings.Contains(text, "(ID:"):
		// display text of a committed selection
	case isDigits(trimmed):
		id, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			s.candidates = s.defaults
			s.open = true
			return
		}
		s.scheduleLookup(models.ChainQuery{ChainIDs: []uint64{id}})
	case len(trimmed) >= 2:
		s.scheduleLookup(models.ChainQuery{Filter: trimmed})
	default:
		s.candidates = s.defaults
		s.open = true
	}
}

// Key handles dropdown navigation and reports whether the key was consumed
func (s *Selector) Key(k Key) bool {
	if !s.open || len(s.candidates) == 0 {
		return false
	}

	n := len(s.candidates)
	switch k {
	case KeyDown:
		if s.focused < n-1 {
			s.focused++
		} else {
			s.focused = 0
		}
	case KeyUp:
		if s.focused > 0 {
			s.focused--
		} else {
			s.focused = n - 1
		}
	case KeyEnter:
		if s.focused >= 0 && s.focused < n {
			s.Select(s.candidates[s.focused])
		}
	case KeyEscape:
		s.open = false
		s.focused = -1
		s.hasFocus = false
	default:
		return false
	}
	return true
}

// Focus opens the dropdown
func (s *Selector) Focus() {
	s.hasFocus = true
	if strings.TrimSpace(s.text) == "" {
		s.candidates = s.defaults
	}
	if len(s.candidates) > 0 {
		s.open = true
	}
}

// Blur closes the dropdown
func (s *Selector) Blur() {
	s.hasFocus = false
	s.open = false
	s.focused = -1
}

// Select commits entry and notifies OnChange
func (s *Selector) Select(entry models.ChainEntry) {
	s.cancelLookup()
	s.selected = &entry
	s.text = entry.DisplayName()
	s.open = false
	s.focused = -1
	if s.onChange != nil {
		s.onChange(entry.ChainID)
	}
}

// SetInitial shows chainID as selected without notifying OnChange
func (s *Selector) SetInitial(chainID uint64) {
	entry, ok := models.FindDefaultChain(chainID)
	if !ok {
		entry = models.ChainEntry{ChainID: chainID, Name: "Chain"}
	}
	s.selected = &entry
	s.text = entry.DisplayName()
}

// Close stops any pending lookup
func (s *Selector) Close() {
	s.cancelLookup()
}

func (s *Selector) State() State {
	switch {
	case s.querying:
		return Querying
	case s.open:
		return Open
	case s.selected != nil:
		return Selected
	default:
		return Idle
	}
}

func (s *Selector) Text() string                    { return s.text }
func (s *Selector) Candidates() []models.ChainEntry { return s.candidates }
func (s *Selector) FocusedIndex() int               { return s.focused }
func (s *Selector) IsOpen() bool                    { return s.open && len(s.candidates) > 0 }
func (s *Selector) HasFocus() bool                  { return s.hasFocus }
func (s *Selector) Err() error                      { return s.err }

// Selected returns the committed chain, if any
func (s *Selector) Selected() (models.ChainEntry, bool) {
	if s.selected == nil {
		return models.ChainEntry{}, false
	}
	return *s.selected, true
}

func (s *Selector) scheduleLookup(q models.ChainQuery) {
	s.querying = true
	seq := s.seq
	s.debouncer.Trigger(func() {
		chains, err := s.lister.ListChains(s.ctx, q)
		s.dispatch(func() {
			s.applyLookup(seq, q, chains, err)
		})
	})
}

func (s *Selector) applyLookup(seq uint64, q models.ChainQuery, chains []models.ChainEntry, err error) {
	if seq != s.seq {
		s.log.Debug("dropping superseded chain lookup", "filter", q.Filter, "chain_ids", q.ChainIDs)
		return
	}
	s.querying = false
	if err != nil {
		s.log.Warn("failed to load available chains", "error", err)
		s.err = err
		return
	}
	s.err = nil
	s.candidates = chains
	if len(chains) > 0 {
		s.open = true
	}
}

func (s *Selector) cancelLookup() {
	s.debouncer.Cancel()
	s.seq++
	s.querying = false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
