package render

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

// TranscriptRenderer prints stream frames that are not shown in a table
type TranscriptRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTranscriptRenderer creates a new transcript renderer
func NewTranscriptRenderer(out io.Writer) *TranscriptRenderer {
	return &TranscriptRenderer{out: out}
}

// Line implements usecase.Transcript
func (r *TranscriptRenderer) Line(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, text)
}

// Header prints the stream title, e.g. "🔎 Trace 0xabc..."
func (r *TranscriptRenderer) Header(kind models.StreamKind, subject string) {
	r.Line(fmt.Sprintf("🔎 %s %s", cases.Title(language.English).String(string(kind)), subject))
}

// Summary prints the stream statistics
func (r *TranscriptRenderer) Summary(stats *usecase.StreamStats) {
	if stats == nil {
		return
	}
	if stats.LastError != "" {
		r.Line(FormatError(stats.LastError))
	}
	r.Line(fmt.Sprintf("Done: %s message(s), %s transaction(s)",
		FormatNumber(stats.Batches+stats.RawLines), FormatNumber(stats.Transactions)))
}

var _ usecase.Transcript = (*TranscriptRenderer)(nil)
