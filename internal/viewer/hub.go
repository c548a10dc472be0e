package viewer

import (
	"sync"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// Consumer receives batches routed through a Hub. State is the canonical
// consumer; the TUI registers one that forwards to its event loop.
type Consumer interface {
	Replace(batch models.Batch)
	Append(batch models.Batch)
	Clear()
	SetChainInfo(info *models.ChainInfo)
}

// Tagger is implemented by consumers that apply deliveries later, outside the
// hub's lock. The hub hands them a consumer bound to the delivery's
// generation so late arrivals can be dropped on the receiving side.
type Tagger interface {
	Tagged(gen uint64) Consumer
}

// Route selects how a batch is applied
type Route int

const (
	RouteAppend Route = iota
	RouteReplace
)

func (r Route) String() string {
	if r == RouteReplace {
		return "replace"
	}
	return "append"
}

// Outcome reports what happened to a delivery
type Outcome int

const (
	// Delivered means every subscribed consumer received the batch
	Delivered Outcome = iota
	// Stale means the batch belongs to a superseded request and was dropped
	Stale
	// Unhandled means nobody is subscribed; the caller shows raw output instead
	Unhandled
)

// Hub routes stream results to the subscribed consumers and drops results
// that belong to superseded requests.
type Hub struct {
	mu        sync.Mutex
	consumers map[int]Consumer
	order     []int
	nextID    int
	gen       uint64
}

// NewHub creates a hub with no consumers
func NewHub() *Hub {
	return &Hub{consumers: make(map[int]Consumer)}
}

// Subscribe registers c and returns a func that removes it again
func (h *Hub) Subscribe(c Consumer) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.consumers[id] = c
	h.order = append(h.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.consumers, id)
			for i, v := range h.order {
				if v == id {
					h.order = append(h.order[:i], h.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Begin starts a new request generation. Deliveries tagged with any older
// generation are dropped from now on.
func (h *Hub) Begin() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	return h.gen
}

// Generation returns the current request generation
func (h *Hub) Generation() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gen
}

// Deliver routes batch to every consumer if gen is still current
func (h *Hub) Deliver(gen uint64, route Route, batch models.Batch) Outcome {
	consumers, outcome := h.snapshot(gen)
	if outcome != Delivered {
		return outcome
	}
	for _, c := range consumers {
		if route == RouteReplace {
			c.Replace(batch)
		} else {
			c.Append(batch)
		}
	}
	return Delivered
}

// ClearFor empties every consumer if gen is still current
func (h *Hub) ClearFor(gen uint64) Outcome {
	consumers, outcome := h.snapshot(gen)
	if outcome != Delivered {
		return outcome
	}
	for _, c := range consumers {
		c.Clear()
	}
	return Delivered
}

// DeliverChainInfo installs a chain snapshot on every consumer if gen is
// still current
func (h *Hub) DeliverChainInfo(gen uint64, info *models.ChainInfo) Outcome {
	consumers, outcome := h.snapshot(gen)
	if outcome != Delivered {
		return outcome
	}
	for _, c := range consumers {
		c.SetChainInfo(info)
	}
	return Delivered
}

// Replace delivers batch on the current generation
func (h *Hub) Replace(batch models.Batch) bool {
	return h.Deliver(h.Generation(), RouteReplace, batch) == Delivered
}

// Append delivers batch on the current generation
func (h *Hub) Append(batch models.Batch) bool {
	return h.Deliver(h.Generation(), RouteAppend, batch) == Delivered
}

// Clear empties every consumer on the current generation
func (h *Hub) Clear() bool {
	return h.ClearFor(h.Generation()) == Delivered
}

func (h *Hub) snapshot(gen uint64) ([]Consumer, Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if gen != h.gen {
		return nil, Stale
	}
	if len(h.order) == 0 {
		return nil, Unhandled
	}
	consumers := make([]Consumer, 0, len(h.order))
	for _, id := range h.order {
		c := h.consumers[id]
		if t, ok := c.(Tagger); ok {
			c = t.Tagged(gen)
		}
		consumers = append(consumers, c)
	}
	return consumers, Delivered
}
