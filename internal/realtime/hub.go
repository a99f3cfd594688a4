package realtime

import (
	"sync"

	"github.com/studenthub/studenthub-api/internal/dto"
)

const subscriberBuffer = 16

// Hub fans out newly created messages to subscribers keyed by recipient id.
// Delivery is best effort: a subscriber whose buffer is full misses the
// event and is expected to re-fetch history through the ordinary read path.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint64]map[chan dto.MessageDTO]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]map[chan dto.MessageDTO]struct{}),
	}
}

// Subscribe registers interest in messages addressed to recipientID. The
// returned cancel func must be called when the subscriber goes away; it
// closes the channel.
func (h *Hub) Subscribe(recipientID uint64) (<-chan dto.MessageDTO, func()) {
	ch := make(chan dto.MessageDTO, subscriberBuffer)

	h.mu.Lock()
	if h.subs[recipientID] == nil {
		h.subs[recipientID] = make(map[chan dto.MessageDTO]struct{})
	}
	h.subs[recipientID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[recipientID], ch)
			if len(h.subs[recipientID]) == 0 {
				delete(h.subs, recipientID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish delivers a message to every subscriber of the recipient without
// blocking. Subscribers that cannot keep up drop the event.
func (h *Hub) Publish(recipientID uint64, message dto.MessageDTO) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[recipientID] {
		select {
		case ch <- message:
		default:
		}
	}
}
