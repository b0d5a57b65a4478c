package realtime

import (
	"log"
	"sync"
)

// EventType mirrors the row-level change kinds of the datastore feed.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Watched tables.
const (
	TableOrders   = "orders"
	TableProfiles = "profiles"
)

// ChangeEvent is one row-level change notification.
type ChangeEvent struct {
	Table string    `json:"table"`
	Type  EventType `json:"eventType"`
	New   any       `json:"new,omitempty"`
	Old   any       `json:"old,omitempty"`
}

// Hub is the single shared change-feed manager. Every interested view gets
// its own subscription channel; subscriptions are counted and torn down via
// the cancel func, so no stream is ever leaked and no table is watched
// twice.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan ChangeEvent // table -> subscriber id -> channel
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan ChangeEvent)}
}

var hubInstance = NewHub()

// GetHub returns the process-wide hub instance.
func GetHub() *Hub {
	return hubInstance
}

// SetHub replaces the hub instance (primarily for testing)
func SetHub(h *Hub) {
	hubInstance = h
}

// Subscribe registers interest in one table's change feed. The returned
// cancel func releases the subscription and is safe to call more than once.
func (h *Hub) Subscribe(table string) (<-chan ChangeEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan ChangeEvent, 16)

	if h.subs[table] == nil {
		h.subs[table] = make(map[int]chan ChangeEvent)
	}
	h.subs[table][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[table][id]; ok {
				delete(h.subs[table], id)
				if len(h.subs[table]) == 0 {
					delete(h.subs, table)
				}
				close(sub)
			}
		})
	}

	return ch, cancel
}

// SubscriberCount reports how many subscriptions a table currently has.
func (h *Hub) SubscriberCount(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[table])
}

// Publish broadcasts a change event to every subscriber of its table.
// Sends never block: a subscriber that cannot keep up drops events
// (last event wins per row, so consumers reconverge on the next change).
func (h *Hub) Publish(evt ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs[evt.Table] {
		select {
		case ch <- evt:
		default:
			log.Printf("realtime: subscriber %d lagging on table %s; drop %s event", id, evt.Table, evt.Type)
		}
	}
}
