package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// batchMsg carries a hub delivery into the event loop
type batchMsg struct {
	gen   uint64
	route viewer.Route
	batch models.Batch
}

type clearMsg struct {
	gen uint64
}

type chainInfoMsg struct {
	gen  uint64
	info *models.ChainInfo
}

type progressMsg usecase.ProgressEvent

type noticeMsg string

// dispatchMsg runs a selector callback on the event loop
type dispatchMsg func()

// exploreDoneMsg ends load number seq
type exploreDoneMsg struct {
	seq    int
	result *usecase.ExploreBlockResult
	err    error
}

// hubBridge forwards hub deliveries to the program. The hub calls it from
// the loading goroutine, so nothing here touches the model. Messages carry
// the generation they were delivered for; the model drops older ones.
type hubBridge struct {
	send func(tea.Msg)
	gen  uint64
}

func (b hubBridge) Tagged(gen uint64) viewer.Consumer {
	return hubBridge{send: b.send, gen: gen}
}

func (b hubBridge) Replace(batch models.Batch) {
	b.send(batchMsg{gen: b.gen, route: viewer.RouteReplace, batch: batch})
}

func (b hubBridge) Append(batch models.Batch) {
	b.send(batchMsg{gen: b.gen, route: viewer.RouteAppend, batch: batch})
}

func (b hubBridge) Clear() { b.send(clearMsg{gen: b.gen}) }

func (b hubBridge) SetChainInfo(info *models.ChainInfo) {
	b.send(chainInfoMsg{gen: b.gen, info: info})
}

// progressBridge is the explorer's progress sink
type progressBridge struct {
	send func(tea.Msg)
}

func (b progressBridge) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	b.send(progressMsg(event))
}

func (b progressBridge) Info(message string)  { b.send(noticeMsg(message)) }
func (b progressBridge) Error(message string) { b.send(noticeMsg(message)) }

var (
	_ viewer.Consumer      = hubBridge{}
	_ viewer.Tagger        = hubBridge{}
	_ usecase.ProgressSink = progressBridge{}
)
